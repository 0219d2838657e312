package order

import (
	"go.uber.org/zap"

	"tutorlink/internal/config"
	"tutorlink/internal/order/controller"
	"tutorlink/internal/order/draft"
	"tutorlink/internal/order/repository"
	"tutorlink/internal/order/service"
	"tutorlink/internal/order/session"
	"tutorlink/internal/platform/telegram"
)

type Module struct {
	Drafts *controller.DraftController
	Orders *controller.OrdersController
	Store  *session.Store
}

func NewModule(cfg *config.Config, vocabulary draft.TagVocabulary, logger *zap.Logger) *Module {
	orderRepo := repository.NewHTTPOrderRepository(cfg.OrdersAPI.BaseURL, cfg.OrdersAPI.Timeout, logger)
	orderSvc := service.NewOrderService(orderRepo, logger)
	validator := telegram.NewInitDataValidator(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL)

	store := session.NewStore(
		vocabulary,
		orderRepo,
		cfg.OrdersAPI.Timeout,
		cfg.Draft.TTL,
		logger,
	)

	return &Module{
		Drafts: controller.NewDraftController(store, validator, logger),
		Orders: controller.NewOrdersController(orderSvc, validator, logger),
		Store:  store,
	}
}
