package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AccountUsecase はアカウント削除とそのカスケードを担当します。
// カート本体を消すのはこの経路だけ（通常の変更は明細の増減のみ）。
type AccountUsecase struct {
	tx        repo.TransactionManager
	userRepo  repo.UserRepository
	auditRepo repo.AuditLogRepository
}

func NewAccountUsecase(
	tx repo.TransactionManager,
	userRepo repo.UserRepository,
	auditRepo repo.AuditLogRepository,
) *AccountUsecase {
	return &AccountUsecase{tx: tx, userRepo: userRepo, auditRepo: auditRepo}
}

// ListAuditTrail は自分の操作履歴を新しい順に返す。
// limit/offsetの丸め（既定50・上限200）はrepository側が行う。
func (u *AccountUsecase) ListAuditTrail(ctx context.Context, userID string, limit int, offset int) ([]model.AuditLog, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{
		ActorUserID: &userID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

// DeleteAccount はユーザー本体と、顧客・カート・明細を1トランザクションで削除する。
func (u *AccountUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return NewHTTPError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var purgedCartID int64
		var purgedItems int

		//顧客が居ればカートと明細をカスケード削除
		customer, err := r.Customers().FindByUserID(ctx, userID)
		if err == nil {
			cartID, itemCount, err := PurgeCustomerCart(ctx, r, customer.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			purgedCartID = cartID
			purgedItems = itemCount

			if err := r.Customers().DeleteByUserID(ctx, userID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Users().DeleteByID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（誰が・何を消したか）
		detail, _ := json.Marshal(map[string]interface{}{
			"email":      user.Email,
			"cart_id":    purgedCartID,
			"cart_items": purgedItems,
		})
		logErr := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  userID,
			Action:       model.AuditActionDeleteAccount,
			ResourceType: model.AuditResourceCart,
			ResourceID:   purgedCartID,
			DetailJSON:   string(detail),
			CreatedAt:    time.Now(),
		})
		if logErr != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// PurgeCustomerCart は顧客のカートと明細をまとめて削除する。
// カートが無ければ何もしない。戻り値は消したカートIDと明細数。
func PurgeCustomerCart(ctx context.Context, r repo.TxRepos, customerID int64) (int64, int, error) {
	cart, err := r.Carts().FindByCustomerID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	//明細を参照リストで一括削除してから、カート本体を消す
	if err := r.CartItems().DeleteByIDs(ctx, cart.CartItemIDs); err != nil {
		return 0, 0, err
	}
	if err := r.Carts().DeleteByID(ctx, cart.ID); err != nil {
		return 0, 0, err
	}

	return cart.ID, len(cart.CartItemIDs), nil
}
