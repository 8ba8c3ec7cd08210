package httpapi

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"thingsd/internal/things"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	CreateThing(ctx context.Context, t things.Thing) error
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(corsHandler())
	}
	r.Use(middleware.Compress(5, "application/json"))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed on "+r.URL.Path)
	})

	r.Post("/things", createThingHandler(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// createThingHandler godoc
// @Summary      Create a thing
// @Description  Decodes a Thing. Transport failures return 400, schema failures return 422 with the raw input echoed back.
// @Tags         things
// @Accept       json
// @Param        thing  body  types.ThingRequest  true  "Thing payload"
// @Success      200
// @Failure      400  {object}  types.IOErrorResponse
// @Failure      415  {object}  types.ErrorResponse
// @Failure      422  {object}  types.ParseErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /things [post]
func createThingHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "POST /things")
		defer span.End()

		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
			span.SetStatus(codes.Error, "unsupported media type")
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		start := time.Now()
		lvl := requestLogLevel(r)
		logStart(r, lvl)

		thing, err := things.Decode(r.Body)
		if err != nil {
			var de *things.DeserializeError
			if !errors.As(err, &de) {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				logEnd(r, lvl, http.StatusInternalServerError, start, err)
				return
			}
			decodeFailuresTotal.WithLabelValues(de.Kind.String()).Inc()
			span.SetAttributes(attribute.String(attrDecode, de.Kind.String()))
			span.SetStatus(codes.Error, de.Error())
			if lvl >= LevelDebug {
				logRejectedBody(r, de)
			}
			writeDeserializeError(w, de)
			logEnd(r, lvl, de.StatusCode(), start, err)
			return
		}
		span.SetAttributes(
			attribute.String(attrDecode, "ok"),
			attribute.Bool(attrImportant, thing.ImportantField),
		)
		thingsAcceptedTotal.WithLabelValues(strconv.FormatBool(thing.ImportantField)).Inc()

		// Shutdown of the server cancels a running action as well.
		actx, cancel := joinContexts(serverBaseCtx, ctx)
		defer cancel()
		if actionTimeout > 0 {
			var tcancel context.CancelFunc
			actx, tcancel = context.WithTimeout(actx, time.Duration(actionTimeout)*time.Second)
			defer tcancel()
		}
		if err := svc.CreateThing(actx, thing); err != nil {
			status := http.StatusInternalServerError
			var he HTTPError
			if errors.As(err, &he) {
				status = he.StatusCode()
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, status, start, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		logEnd(r, lvl, http.StatusOK, start, nil)
	}
}
