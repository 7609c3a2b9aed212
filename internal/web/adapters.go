package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mwhitby/unitcheck/internal/domain"
)

// formConfirmer adapts the browser's confirm() dialog into the
// confirmation port: the client runs the dialog and posts the outcome as
// a form flag, so a mutating request only proceeds when confirmed=1 was
// sent.
type formConfirmer struct {
	confirmed bool
}

func newFormConfirmer(r *http.Request) formConfirmer {
	return formConfirmer{confirmed: r.FormValue("confirmed") == "1"}
}

func (c formConfirmer) Ask(_ context.Context, _ string) (bool, error) {
	return c.confirmed, nil
}

// frameCamera adapts an uploaded browser frame into the camera port: the
// device capture happened client-side and its result rides in on the
// request.
type frameCamera struct {
	data []byte
}

func (c frameCamera) Capture(_ context.Context) ([]byte, error) {
	if len(c.data) == 0 {
		return nil, domain.ErrCaptureUnavailable
	}
	return c.data, nil
}

// itemKeyFromPath reads the {category}/{index} path segments.
func itemKeyFromPath(r *http.Request) (domain.ItemKey, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return domain.ItemKey{}, fmt.Errorf("invalid item index: %w", err)
	}
	return domain.ItemKey{CategoryID: r.PathValue("category"), Index: index}, nil
}

// photoIndexFromPath reads the {photo} path segment.
func photoIndexFromPath(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("photo"))
	if err != nil {
		return 0, fmt.Errorf("invalid photo index: %w", err)
	}
	return index, nil
}

func itemIndexPath(key domain.ItemKey) string {
	return strconv.Itoa(key.Index)
}
