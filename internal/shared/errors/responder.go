package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper maps an application error to a ProblemDetail, reporting false when it does not apply.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Sentinel maps any error matching target via errors.Is onto base, with the error text as detail.
func Sentinel(target error, base ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		if !errors.Is(err, target) {
			return ProblemDetail{}, false
		}
		return base.WithDetail(err.Error()), true
	}
}

// Typed maps errors whose chain holds a T, letting build read the typed fields.
func Typed[T error](build func(T) ProblemDetail) ErrorMapper {
	return func(err error) (ProblemDetail, bool) {
		var target T
		if !errors.As(err, &target) {
			return ProblemDetail{}, false
		}
		return build(target), true
	}
}

// Responder writes Problem Details for API errors. Unmapped errors become 500s and are logged,
// since their text is the only trace of a failed downstream call.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

// ResponderOption tunes a Responder.
type ResponderOption func(*Responder)

// WithBaseURI prefixes relative problem type URIs.
func WithBaseURI(baseURI string) ResponderOption {
	return func(r *Responder) {
		r.baseURI = baseURI
	}
}

// WithMappers appends error mappers, tried in order.
func WithMappers(mappers ...ErrorMapper) ResponderOption {
	return func(r *Responder) {
		r.mappers = append(r.mappers, mappers...)
	}
}

// WithLogger records the causes of 5xx responses. The process default logger is used otherwise.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResponder builds a responder. Without mappers every non-problem error is a 500.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// DefaultResponder uses relative URIs and no mappers.
var DefaultResponder = NewResponder()

// Respond writes problem with the problem content type. A missing error code is derived from the status.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if problem.ErrorCode == "" {
		problem.ErrorCode = codeForStatus(problem.Status)
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError runs err through the mappers, then passes a ProblemDetail in its chain through as is.
// Anything else is an internal error.
func (r *Responder) RespondError(c *gin.Context, err error) {
	problem := r.problemFor(err)
	if problem.Status >= http.StatusInternalServerError {
		r.log().LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
	}
	r.Respond(c, problem)
}

func (r *Responder) problemFor(err error) ProblemDetail {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	return ErrInternal.WithDetail(err.Error())
}

func (r *Responder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= http.StatusInternalServerError:
		return CodeInternal
	case status >= http.StatusBadRequest:
		return CodeInvalidInput
	default:
		return ""
	}
}
