package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studiobook/booking-service/internal/domain"
	bookingRepo "github.com/studiobook/booking-service/internal/infra/storage/booking"
	tokenRepo "github.com/studiobook/booking-service/internal/infra/storage/token"
)

const defaultCancellationReason = "cancelled by client"

// UseCase отменяет бронирования по одноразовому токену или по ID
type UseCase struct {
	bookingRepo  BookingRepository
	tokenRepo    TokenRepository
	txManager    TxManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase отмены бронирования
func NewUseCase(
	bookingRepo BookingRepository,
	tokenRepo TokenRepository,
	txManager TxManager,
	notifier Notifier,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tokenRepo:    tokenRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CancelByToken отменяет бронирование по одноразовому токену. Токен
// гасится и отмена выполняются в одной транзакции: повторное
// использование, просрочка и неизвестное значение неразличимы для клиента
func (uc *UseCase) CancelByToken(ctx context.Context, req *CancelByTokenRequest) (*Response, error) {
	if req == nil || strings.TrimSpace(req.Token) == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	token, err := uc.tokenRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			uc.logger.Warn("CancelByToken: unknown token")
			return nil, ErrTokenInvalidOrExpired
		}
		uc.logger.Error("CancelByToken: failed to fetch token: %v", err)
		return nil, fmt.Errorf("%w: CancelByToken - fetch token: %v", ErrInternal, err)
	}

	if !token.IsUsable(now) {
		uc.logger.Warn("CancelByToken: token id=%d expired or already used", token.ID)
		return nil, ErrTokenInvalidOrExpired
	}

	var booking *domain.Booking

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Гашение первым: UPDATE ... WHERE used_at IS NULL сериализует
		// конкурентные отмены по одному токену
		if err := uc.tokenRepo.MarkUsed(txCtx, token.ID, now); err != nil {
			if errors.Is(err, tokenRepo.ErrTokenAlreadyUsed) {
				return ErrTokenInvalidOrExpired
			}
			return fmt.Errorf("mark token used: %w", err)
		}

		b, err := uc.bookingRepo.GetByID(txCtx, token.BookingID)
		if err != nil {
			return fmt.Errorf("fetch booking: %w", err)
		}

		if b.IsCancelled() {
			booking = b
			return nil
		}
		if !b.CanBeCancelled() {
			return ErrBookingNotCancellable
		}

		if err := uc.bookingRepo.Cancel(txCtx, b.ID, resolveReason(req.Reason)); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError("CancelByToken", err)
	}

	uc.logger.Info("CancelByToken: cancelled booking id=%d", booking.ID)
	uc.notifier.NotifyBookingCancelled(ctx, booking)

	return fromDomain(booking, false), nil
}

// CancelByID отменяет бронирование по ID. Операция идемпотентна:
// повторная отмена уже отмененного бронирования успешна
func (uc *UseCase) CancelByID(ctx context.Context, req *CancelByIDRequest) (*Response, error) {
	if req == nil || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	var booking *domain.Booking
	var alreadyCancelled bool

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("fetch booking: %w", err)
		}

		if b.IsCancelled() {
			booking = b
			alreadyCancelled = true
			return nil
		}
		if !b.CanBeCancelled() {
			return ErrBookingNotCancellable
		}

		if err := uc.bookingRepo.Cancel(txCtx, b.ID, resolveReason(req.Reason)); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, uc.mapTxError("CancelByID", err)
	}

	if alreadyCancelled {
		uc.logger.Info("CancelByID: booking id=%d already cancelled", booking.ID)
	} else {
		uc.logger.Info("CancelByID: cancelled booking id=%d", booking.ID)
		uc.notifier.NotifyBookingCancelled(ctx, booking)
	}

	return fromDomain(booking, alreadyCancelled), nil
}

// mapTxError пробрасывает бизнес-ошибки и оборачивает инфраструктурные
func (uc *UseCase) mapTxError(op string, err error) error {
	switch {
	case errors.Is(err, ErrTokenInvalidOrExpired),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrBookingNotCancellable):
		uc.logger.Warn("%s: %v", op, err)
		return err
	default:
		uc.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}
}

func resolveReason(reason *string) string {
	if reason != nil && strings.TrimSpace(*reason) != "" {
		return *reason
	}
	return defaultCancellationReason
}
