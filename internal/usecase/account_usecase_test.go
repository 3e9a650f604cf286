package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type accountFixture struct {
	users     *UserRepoMock
	customers *CustomerRepoMock
	carts     *CartRepoMock
	cartItems *CartItemRepoMock
	auditLogs *AuditLogRepoMock
	uc        *usecase.AccountUsecase
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		users:     new(UserRepoMock),
		customers: new(CustomerRepoMock),
		carts:     new(CartRepoMock),
		cartItems: new(CartItemRepoMock),
		auditLogs: new(AuditLogRepoMock),
	}

	tx := &txManagerStub{repos: &txReposStub{
		carts:     f.carts,
		cartItems: f.cartItems,
		customers: f.customers,
		products:  new(ProductRepoMock),
		users:     f.users,
		auditLogs: f.auditLogs,
	}}

	f.uc = usecase.NewAccountUsecase(tx, f.users, f.auditLogs)
	return f
}

// ユーザー・顧客・カート・明細がまとめて消え、監査ログが1件残る
func TestAccountUsecase_DeleteAccount_PurgesCart(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	f.users.On("FindByID", mock.Anything, "u-1").
		Return(&model.User{ID: "u-1", Email: "a@example.com", IsActive: true}, nil)
	f.customers.On("FindByUserID", mock.Anything, "u-1").
		Return(model.Customer{ID: 10, UserID: "u-1"}, nil)
	f.carts.On("FindByCustomerID", mock.Anything, int64(10)).
		Return(model.Cart{ID: 3, CustomerID: 10, CartItemIDs: []int64{7, 8}, TotalPrice: 250}, nil)
	f.cartItems.On("DeleteByIDs", mock.Anything, []int64{7, 8}).Return(nil)
	f.carts.On("DeleteByID", mock.Anything, int64(3)).Return(nil)
	f.customers.On("DeleteByUserID", mock.Anything, "u-1").Return(nil)
	f.users.On("DeleteByID", mock.Anything, "u-1").Return(nil)

	var logged model.AuditLog
	f.auditLogs.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			logged, _ = args.Get(1).(model.AuditLog)
		}).
		Return(nil)

	err := f.uc.DeleteAccount(ctx, "u-1")

	assert.NoError(t, err)
	f.carts.AssertExpectations(t)
	f.cartItems.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.users.AssertExpectations(t)

	assert.Equal(t, "u-1", logged.ActorUserID)
	assert.Equal(t, model.AuditActionDeleteAccount, logged.Action)
	assert.Equal(t, model.AuditResourceCart, logged.ResourceType)
	assert.Equal(t, int64(3), logged.ResourceID)

	var detail map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(logged.DetailJSON), &detail))
	assert.Equal(t, "a@example.com", detail["email"])
	assert.Equal(t, float64(3), detail["cart_id"])
	assert.Equal(t, float64(2), detail["cart_items"])
}

// 顧客はいるがカート未作成でも削除は成功する
func TestAccountUsecase_DeleteAccount_NoCart(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	f.users.On("FindByID", mock.Anything, "u-1").
		Return(&model.User{ID: "u-1", Email: "a@example.com"}, nil)
	f.customers.On("FindByUserID", mock.Anything, "u-1").
		Return(model.Customer{ID: 10, UserID: "u-1"}, nil)
	f.carts.On("FindByCustomerID", mock.Anything, int64(10)).
		Return(model.Cart{}, repo.ErrNotFound)
	f.customers.On("DeleteByUserID", mock.Anything, "u-1").Return(nil)
	f.users.On("DeleteByID", mock.Anything, "u-1").Return(nil)
	f.auditLogs.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.uc.DeleteAccount(ctx, "u-1")

	assert.NoError(t, err)
	f.carts.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	f.cartItems.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
}

// 顧客レコードが無いユーザーでもユーザー本体は消える
func TestAccountUsecase_DeleteAccount_NoCustomer(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	f.users.On("FindByID", mock.Anything, "u-1").
		Return(&model.User{ID: "u-1", Email: "a@example.com"}, nil)
	f.customers.On("FindByUserID", mock.Anything, "u-1").
		Return(model.Customer{}, repo.ErrNotFound)
	f.users.On("DeleteByID", mock.Anything, "u-1").Return(nil)
	f.auditLogs.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.uc.DeleteAccount(ctx, "u-1")

	assert.NoError(t, err)
	f.customers.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
}

func TestAccountUsecase_DeleteAccount_UserNotFound(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	f.users.On("FindByID", mock.Anything, "u-x").
		Return((*model.User)(nil), repo.ErrUserNotFound)

	err := f.uc.DeleteAccount(ctx, "u-x")
	assertHTTPStatus(t, err, 404, "account not found")
}

func TestAccountUsecase_DeleteAccount_EmptyUserID(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	err := f.uc.DeleteAccount(ctx, "")
	assertHTTPStatus(t, err, 401, "unauthorized")
}

// 自分の操作履歴だけがactor絞り込みで返る
func TestAccountUsecase_ListAuditTrail(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	want := []model.AuditLog{
		{ID: 2, ActorUserID: "u-1", Action: model.AuditActionDeleteAccount},
	}
	f.auditLogs.On("List", mock.Anything, mock.MatchedBy(func(filter repo.AuditLogFilter) bool {
		return filter.ActorUserID != nil && *filter.ActorUserID == "u-1" &&
			filter.Limit == 20 && filter.Offset == 5
	})).Return(want, nil)

	logs, err := f.uc.ListAuditTrail(ctx, "u-1", 20, 5)

	assert.NoError(t, err)
	assert.Equal(t, want, logs)
	f.auditLogs.AssertExpectations(t)
}

func TestAccountUsecase_ListAuditTrail_EmptyUserID(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	_, err := f.uc.ListAuditTrail(ctx, "", 0, 0)
	assertHTTPStatus(t, err, 401, "unauthorized")
	f.auditLogs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// PurgeCustomerCartを単体で。カート無しは(0,0,nil)
func TestPurgeCustomerCart_NoCart(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture()

	f.carts.On("FindByCustomerID", mock.Anything, int64(10)).
		Return(model.Cart{}, repo.ErrNotFound)

	repos := &txReposStub{
		carts:     f.carts,
		cartItems: f.cartItems,
		customers: f.customers,
		products:  new(ProductRepoMock),
		users:     f.users,
		auditLogs: f.auditLogs,
	}

	cartID, itemCount, err := usecase.PurgeCustomerCart(ctx, repos, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), cartID)
	assert.Equal(t, 0, itemCount)
}
