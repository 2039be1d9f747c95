package service

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"eventoria/internal/cache"
	"eventoria/internal/config"
	"eventoria/internal/document"
	"eventoria/internal/pkg/logging"
	"eventoria/internal/pkg/validation"
	"eventoria/internal/queue"
	"eventoria/internal/realtime"
	"eventoria/internal/repository"
	"eventoria/internal/service/admin"
	"eventoria/internal/service/approval"
	"eventoria/internal/service/auth"
	"eventoria/internal/service/booking"
	"eventoria/internal/service/catalog"
	"eventoria/internal/service/email"
	"eventoria/internal/service/listing"
	"eventoria/internal/service/media"
	"eventoria/internal/service/notification"
	"eventoria/internal/service/user"
	"eventoria/internal/storage"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Catalog      catalog.Service
	Listing      listing.Service
	Approval     approval.Service
	Booking      booking.Service
	Admin        admin.Service
	Media        media.Service
	Email        email.Service
	Notification notification.Service

	// ConfirmationMail consumes booking.confirmed events.
	ConfirmationMail queue.Handler
}

// Infra is the set of external clients the services run on. Redis, the
// broker and the realtime publisher are optional.
type Infra struct {
	Redis    *redis.Client
	Store    storage.BlobStore
	Realtime realtime.Publisher
	AMQP     *amqp.Connection
}

func NewServices(repos *repository.Repositories, tx repository.TxManager, infra Infra, cfg *config.Config) *Services {
	c := cache.New(infra.Redis)
	v := validation.New(cfg.Location())

	emailService := email.NewService(cfg)
	mailHandler := queue.NewMailHandler(emailService)

	var publisher queue.Publisher
	if infra.AMQP != nil {
		publisher = queue.NewAMQPPublisher(infra.AMQP, cfg.RabbitMQURL, cfg.RabbitMQQueue, logging.Component("queue-publisher"))
	} else {
		publisher = queue.NewDirectPublisher(mailHandler, log.Logger)
	}

	notificationService := notification.NewService(repos, infra.Realtime, cfg.NotificationLogLimit)
	authService := auth.NewService(repos.User, repos.Session, emailService, notificationService, v, cfg)

	return &Services{
		Auth:             authService,
		User:             user.NewService(repos, tx, notificationService, c),
		Catalog:          catalog.NewService(repos.Category, repos.Listing, c),
		Listing:          listing.NewService(repos.Listing, tx, v, c),
		Approval:         approval.NewService(repos, tx, notificationService, emailService, v, c),
		Booking:          booking.NewService(repos, tx, notificationService, publisher, v, document.NewRenderer(cfg.Location())),
		Admin:            admin.NewService(repos, tx, notificationService, c),
		Media:            media.NewService(infra.Store),
		Email:            emailService,
		Notification:     notificationService,
		ConfirmationMail: mailHandler,
	}
}
