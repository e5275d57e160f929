package api

import (
	"context"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/pratham13103/OfferLetter-Verification/internal/dto"
	"github.com/pratham13103/OfferLetter-Verification/internal/letter"
	"github.com/pratham13103/OfferLetter-Verification/internal/repository/offerletter"
)

// @title           Offer Letter Service
// @version         1.0
// @description     Хранение офферных писем и генерация .docx по шаблону.
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type OfferLetterRepository interface {
	Create(ctx context.Context, p offerletter.CreateParams) (int64, error)
	GetByID(ctx context.Context, id int64) (*dto.OfferLetter, error)
	List(ctx context.Context) ([]dto.OfferLetter, error)
	ListSummaries(ctx context.Context) ([]dto.OfferLetterSummary, error)
}

type EventsRepository interface {
	ListEvents(ctx context.Context, limit, offset int) ([]dto.LetterEvent, error)
	ListDLQ(ctx context.Context, limit, offset int) ([]dto.KafkaDLQ, error)
}

type Generator interface {
	Generate(ctx context.Context, rec dto.OfferLetter) (*letter.Result, error)
}

type Producer interface {
	ProduceCreated(ctx context.Context, rec dto.OfferLetter) error
	ProduceGenerated(ctx context.Context, rec dto.OfferLetter, fileName string) error
}

type ServiceDeps struct {
	Port          int
	AllowedOrigin string

	Letters   OfferLetterRepository
	Events    EventsRepository
	Generator Generator

	// Producer и Events могут быть nil, если Kafka не настроена.
	Producer Producer

	Log zerolog.Logger
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	letters   OfferLetterRepository
	events    EventsRepository
	generator Generator
	producer  Producer
	log       zerolog.Logger
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:         rt,
		port:      d.Port,
		letters:   d.Letters,
		events:    d.Events,
		generator: d.Generator,
		producer:  d.Producer,
		log:       d.Log.With().Str("component", "api").Logger(),
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            s.Handler(d.AllowedOrigin),
		Name:               "offer-letter-api",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1 MiB
	}

	return s
}

// Handler returns the router wrapped in the middleware chain.
func (s *Service) Handler(allowedOrigin string) fasthttp.RequestHandler {
	return RecoveryMiddleware(LoggingMiddleware(CORS(allowedOrigin)(s.r.Handler)))
}

func (s *Service) Start(ctx context.Context) error {
	s.log.Info().Int("port", s.port).Msg("Starting offer letter API")

	emergencyShutdown := make(chan error, 1)
	go func() {
		emergencyShutdown <- s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Offer letters
	s.r.POST("/create_offer_letter/", s.createOfferLetter)
	s.r.POST("/generate_offer_letter/", s.generateOfferLetter)
	s.r.GET("/get_offer_letter_names/", s.listOfferLetterNames)
	s.r.GET("/offer_letters/", s.listOfferLetters)
	s.r.GET("/offer_letters/{id}", s.getOfferLetter)

	// Events/DLQ
	s.r.GET("/events", s.listEvents)
	s.r.GET("/dlq", s.listDLQ)

	// Health
	s.r.GET("/health", s.healthHandler)
}
