package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tutorlink/internal/domain"
	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/order/validation"
	"tutorlink/internal/platform/telegram"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateClosed     State = "closed"
)

// Texts shown to the user by the flow.
const (
	SubmitButtonText   = "Создать"
	MsgInitDataMissing = "Ошибка инициализации данных. Попробуйте позже"
	MsgOrderCreated    = "Заказ создан! ID: "
	MsgCreateFailed    = "Ошибка создания заказа"
	OrdersListPath     = "/orders"
)

type OrderCreator interface {
	Create(ctx context.Context, payload domain.OrderCreate, initData string) (string, error)
}

type Draft interface {
	Snapshot() validation.Values
	ResetErrors()
	SetErrors(errs []validation.FieldError)
}

type PrimaryTrigger interface {
	Mount()
	IsMounted() bool
	Unmount()
	SetParams(p telegram.ButtonParams)
	OnClick(h telegram.ClickHandler) func()
}

type TokenSource interface {
	InitData() (string, bool)
}

type Notifier interface {
	Notify(message string)
}

type Navigator interface {
	Navigate(path string)
}

type Outcome struct {
	OrderID    string
	NavigateTo string
}

// SubmitOrderUseCase runs the create-order transaction for one draft, from
// the primary button press to navigation. It owns the button between Open
// and Close.
type SubmitOrderUseCase struct {
	draft     Draft
	creator   OrderCreator
	trigger   PrimaryTrigger
	tokens    TokenSource
	notifier  Notifier
	navigator Navigator
	logger    *zap.Logger
	timeout   time.Duration

	lifetime context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	state   State
	off     func()
	outcome *Outcome
}

func NewSubmitOrderUseCase(
	draft Draft,
	creator OrderCreator,
	trigger PrimaryTrigger,
	tokens TokenSource,
	notifier Notifier,
	navigator Navigator,
	logger *zap.Logger,
	timeout time.Duration,
) *SubmitOrderUseCase {
	lifetime, cancel := context.WithCancel(context.Background())
	return &SubmitOrderUseCase{
		draft:     draft,
		creator:   creator,
		trigger:   trigger,
		tokens:    tokens,
		notifier:  notifier,
		navigator: navigator,
		logger:    logger,
		timeout:   timeout,
		lifetime:  lifetime,
		cancel:    cancel,
		state:     StateIdle,
	}
}

// Open mounts the primary button and binds it to Submit.
func (uc *SubmitOrderUseCase) Open() {
	if !uc.trigger.IsMounted() {
		uc.trigger.Mount()
	}
	uc.trigger.SetParams(telegram.ButtonParams{
		Text:      telegram.String(SubmitButtonText),
		IsEnabled: telegram.Bool(true),
		IsVisible: telegram.Bool(true),
	})

	off := uc.trigger.OnClick(func(ctx context.Context) error {
		_, err := uc.Submit(ctx)
		return err
	})

	uc.mu.Lock()
	uc.off = off
	uc.mu.Unlock()
}

// Submit validates the latest draft values and, when they pass, creates the
// order. Field errors are stored on the draft; every failure also comes back
// as an error.
func (uc *SubmitOrderUseCase) Submit(ctx context.Context) (*Outcome, error) {
	if err := uc.begin(); err != nil {
		return nil, err
	}

	uc.draft.ResetErrors()
	values := uc.draft.Snapshot()

	result := validation.Validate(values)
	if !result.Valid() {
		if !uc.finish(StateIdle) {
			return nil, errDraftClosed()
		}
		uc.draft.SetErrors(result.Errors)
		for _, fe := range result.Errors {
			if fe.Code == validation.EmptyRequiredField || fe.Code == validation.InvalidPrice {
				uc.notifier.Notify(fe.Message)
			}
		}
		uc.logger.Info("order draft rejected", zap.Int("errorCount", len(result.Errors)))
		return nil, result.Err()
	}

	initData, ok := uc.tokens.InitData()
	if !ok || initData == "" {
		if !uc.finish(StateIdle) {
			return nil, errDraftClosed()
		}
		uc.notifier.Notify(MsgInitDataMissing)
		uc.logger.Warn("init data unavailable, order not submitted")
		return nil, apperrors.NewPreconditionError("init data is not available")
	}

	return uc.create(ctx, *result.Order, initData)
}

func (uc *SubmitOrderUseCase) create(ctx context.Context, payload domain.OrderCreate, initData string) (*Outcome, error) {
	if !uc.finish(StateSubmitting) {
		return nil, errDraftClosed()
	}

	uc.trigger.SetParams(telegram.ButtonParams{
		IsLoaderVisible: telegram.Bool(true),
		IsEnabled:       telegram.Bool(false),
	})
	defer uc.release()

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	stop := context.AfterFunc(uc.lifetime, cancel)
	defer stop()

	uc.logger.Info("submitting order", zap.String("title", payload.Title), zap.Strings("tags", payload.Tags))

	orderID, err := uc.creator.Create(callCtx, payload, initData)

	if err != nil {
		if !uc.finish(StateIdle) {
			uc.logger.Info("draft closed during submission, discarding failure", zap.Error(err))
			return nil, errDraftClosed()
		}
		uc.logger.Error("order creation failed", zap.Error(err))
		uc.notifier.Notify(MsgCreateFailed)
		return nil, apperrors.NewInternalError("order creation failed", err)
	}

	outcome := &Outcome{OrderID: orderID, NavigateTo: OrdersListPath}

	uc.mu.Lock()
	if uc.state == StateClosed {
		uc.mu.Unlock()
		uc.logger.Info("draft closed during submission, discarding result", zap.String("orderId", orderID))
		return nil, errDraftClosed()
	}
	uc.state = StateSucceeded
	uc.outcome = outcome
	uc.mu.Unlock()

	uc.logger.Info("order created", zap.String("orderId", orderID))
	uc.notifier.Notify(MsgOrderCreated + orderID)
	uc.navigator.Navigate(OrdersListPath)

	return outcome, nil
}

// release leaves the submitting look on every exit path, unless the button
// has already been handed back by Close.
func (uc *SubmitOrderUseCase) release() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state == StateClosed {
		return
	}
	uc.trigger.SetParams(telegram.ButtonParams{
		IsLoaderVisible: telegram.Bool(false),
		IsEnabled:       telegram.Bool(true),
	})
}

// Close releases the button and abandons any in-flight call. Safe to call
// more than once.
func (uc *SubmitOrderUseCase) Close() {
	uc.mu.Lock()
	if uc.state == StateClosed {
		uc.mu.Unlock()
		return
	}
	uc.state = StateClosed
	off := uc.off
	uc.off = nil
	uc.mu.Unlock()

	uc.cancel()
	if off != nil {
		off()
	}
	uc.trigger.SetParams(telegram.ButtonParams{
		IsVisible:       telegram.Bool(false),
		IsEnabled:       telegram.Bool(false),
		IsLoaderVisible: telegram.Bool(false),
	})
	uc.trigger.Unmount()
}

func (uc *SubmitOrderUseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *SubmitOrderUseCase) Outcome() *Outcome {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.outcome == nil {
		return nil
	}
	o := *uc.outcome
	return &o
}

func (uc *SubmitOrderUseCase) begin() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch uc.state {
	case StateIdle:
		uc.state = StateValidating
		return nil
	case StateSucceeded:
		return apperrors.NewConflictError("order already submitted")
	case StateClosed:
		return errDraftClosed()
	default:
		return apperrors.NewConflictError("submission already in progress")
	}
}

// finish moves to the given state unless the flow has been closed.
func (uc *SubmitOrderUseCase) finish(to State) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state == StateClosed {
		return false
	}
	uc.state = to
	return true
}

func errDraftClosed() error {
	return apperrors.NewConflictError("draft is closed")
}
