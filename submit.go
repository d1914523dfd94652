package formjson

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// SubmitEvent is a single user-initiated submission of a form.
type SubmitEvent struct {
	defaultPrevented bool
}

// PreventDefault suppresses the host's default submission, such as page
// navigation.
func (e *SubmitEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether [SubmitEvent.PreventDefault] was called.
func (e *SubmitEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// ControlSource is anything that can list form controls.
type ControlSource interface {
	Controls() []Control
}

// Locator resolves the form a submission applies to.
type Locator interface {
	Locate(ctx context.Context) (ControlSource, error)
}

// LocatorFunc adapts a function to the [Locator] interface.
type LocatorFunc func(ctx context.Context) (ControlSource, error)

func (f LocatorFunc) Locate(ctx context.Context) (ControlSource, error) {
	return f(ctx)
}

// DocumentSource supplies the current state of a page.
type DocumentSource interface {
	Document(ctx context.Context) (*Document, error)
}

// DocumentSourceFunc adapts a function to the [DocumentSource] interface.
type DocumentSourceFunc func(ctx context.Context) (*Document, error)

func (f DocumentSourceFunc) Document(ctx context.Context) (*Document, error) {
	return f(ctx)
}

// StaticDocument returns a source that always yields doc. Mutations made
// through [Document.Root] are visible to later submissions.
func StaticDocument(doc *Document) DocumentSource {
	return DocumentSourceFunc(func(ctx context.Context) (*Document, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

// FileDocument returns a source that parses the file at path on every call.
func FileDocument(path string) DocumentSource {
	return DocumentSourceFunc(func(ctx context.Context) (*Document, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("form: failed to open document: %w", err)
		}
		defer f.Close()
		return Parse(f)
	})
}

// ClassLocator returns a [Locator] that looks up the first element with the
// given class each time it is asked, never caching the result.
func ClassLocator(src DocumentSource, class string) Locator {
	return LocatorFunc(func(ctx context.Context) (ControlSource, error) {
		doc, err := src.Document(ctx)
		if err != nil {
			return nil, err
		}
		return doc.FirstByClass(class)
	})
}

// HandlerOption configures a [Handler].
type HandlerOption func(*Handler)

// WithLogger sets the logger submissions are reported to.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithEncoder writes every serialized form to enc.
func WithEncoder(enc *Encoder) HandlerOption {
	return func(h *Handler) {
		h.encoder = enc
	}
}

// WithIDGenerator overrides how submission ids are generated.
func WithIDGenerator(fn func() string) HandlerOption {
	return func(h *Handler) {
		h.newID = fn
	}
}

// Handler handles submissions of a single form. It holds no state between
// submissions and may be invoked any number of times.
type Handler struct {
	locator Locator
	logger  *slog.Logger
	encoder *Encoder
	newID   func() string
}

// NewHandler returns a [Handler] that resolves its form through loc.
func NewHandler(loc Locator, opts ...HandlerOption) *Handler {
	h := &Handler{
		locator: loc,
		logger:  slog.New(slog.DiscardHandler),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind locates the first element with class in src and returns a handler for
// it. It fails if the element is missing or is not a form. The returned
// handler looks the element up again on every submission.
func Bind(ctx context.Context, src DocumentSource, class string, opts ...HandlerOption) (*Handler, error) {
	loc := ClassLocator(src, class)
	if _, err := loc.Locate(ctx); err != nil {
		return nil, err
	}
	return NewHandler(loc, opts...), nil
}

// HandleSubmit prevents the default action of ev, serializes the form's
// current controls and emits the result. Failure to locate the form is
// returned, never ignored.
func (h *Handler) HandleSubmit(ctx context.Context, ev *SubmitEvent) (*Form, error) {
	ev.PreventDefault()

	id := h.newID()
	src, err := h.locator.Locate(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "form submission failed",
			slog.String("submission_id", id),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("form: submission %s: %w", id, err)
	}

	form := Serialize(src.Controls())
	h.logger.InfoContext(ctx, "form submitted",
		slog.String("submission_id", id),
		slog.Any("form", form),
	)

	if h.encoder != nil {
		if err := h.encoder.Encode(form); err != nil {
			return form, err
		}
	}
	return form, nil
}
