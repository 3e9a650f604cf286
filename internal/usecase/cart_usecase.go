package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 明細の書き込みとカートの参照リスト更新・合計再計算は
// 必ず同じトランザクションに乗せます。
type CartUsecase struct {
	tx           repo.TransactionManager
	customerRepo repo.CustomerRepository
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	mediaRepo    repo.ProductMediaRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	customerRepo repo.CustomerRepository,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	mediaRepo repo.ProductMediaRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		customerRepo: customerRepo,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		mediaRepo:    mediaRepo,
	}
}

// CartItemView は明細＋表示用の商品情報。
type CartItemView struct {
	ID         int64  `json:"id"`
	ProductID  int64  `json:"product_id"`
	Title      string `json:"title"`
	Image      string `json:"image,omitempty"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
}

// CartView はカート全体のレスポンス形。
type CartView struct {
	ID         int64          `json:"id"`
	CustomerID int64          `json:"customer_id"`
	Items      []CartItemView `json:"cart_items"`
	TotalPrice int64          `json:"total_price"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// GetCart はカート取得（読み取り専用の結合。キャッシュしない）。
// カートがまだ無い場合は found=false で返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartView, bool, error) {
	customer, err := u.resolveCustomer(ctx, userID)
	if err != nil {
		return CartView{}, false, err
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customer.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, false, nil
	}
	if err != nil {
		return CartView{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.FindManyByIDs(ctx, cart.CartItemIDs)
	if err != nil {
		return CartView{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	view, err := u.buildCartView(ctx, cart, items)
	if err != nil {
		return CartView{}, false, err
	}
	return view, true, nil
}

// AddToCart はカートに追加。
// 同一商品は数量加算。加算後の合計が0以下になったら明細ごと削除する
// （マイナス数量は明細を縮める・消すための入力として受け付ける）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (CartView, error) {
	if in.ProductID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	customer, err := u.resolveCustomer(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	var (
		cart  model.Cart
		items []model.CartItem
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得（無ければ作成）。行ロックで同一顧客の変更を直列化
		cart, err = r.Carts().GetOrCreateByCustomerID(ctx, customer.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//商品チェック（在庫のオラクル）
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫チェック（予約はしない。超えたら拒否するだけ）
		if in.Quantity > p.Stock {
			return NewHTTPError(http.StatusConflict, "insufficient stock")
		}

		unitPrice := p.Price
		candidateTotal := unitPrice * in.Quantity

		//既存明細を(product, customer)で探す
		item, err := r.CartItems().FindByProductAndCustomer(ctx, in.ProductID, customer.ID)

		switch {
		case errors.Is(err, repo.ErrNotFound):
			//新規。合計が0以下なら何もしない
			if candidateTotal > 0 {
				created, err := r.CartItems().Create(ctx, model.CartItem{
					ProductID:  in.ProductID,
					CustomerID: customer.ID,
					Quantity:   in.Quantity,
					UnitPrice:  unitPrice,
					TotalPrice: candidateTotal,
				})
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}

				cart.CartItemIDs = append(cart.CartItemIDs, created.ID)
				if err := r.Carts().Save(ctx, cart); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

		case err != nil:
			return NewHTTPError(http.StatusInternalServerError, "db error")

		default:
			//既存あり。数量を加算して在庫と比較
			newQty := item.Quantity + in.Quantity
			if newQty > p.Stock {
				return NewHTTPError(http.StatusConflict, "insufficient stock")
			}

			//単価は最初のスナップショットのまま
			newTotal := item.UnitPrice * newQty

			if newTotal <= 0 {
				//合計が0以下になったら明細ごと削除し、参照リストからも外す
				if err := r.CartItems().DeleteByID(ctx, item.ID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				cart.CartItemIDs = removeItemID(cart.CartItemIDs, item.ID)
				if err := r.Carts().Save(ctx, cart); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			} else {
				item.Quantity = newQty
				item.TotalPrice = newTotal
				if err := r.CartItems().Update(ctx, item); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		//合計はキャッシュせず毎回再計算（参照切れの明細は無視される）
		cart, items, err = recalcCartTotal(ctx, r, cart)
		if err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return CartView{}, err
	}

	return u.buildCartView(ctx, cart, items)
}

// RemoveFromCart は明細をまるごと削除する（数量指定なし）。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, productID int64) (CartView, error) {
	if productID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	customer, err := u.resolveCustomer(ctx, userID)
	if err != nil {
		return CartView{}, err
	}

	var (
		cart  model.Cart
		items []model.CartItem
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//商品の存在チェック
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートが無ければ404
		cart, err = r.Carts().FindByCustomerID(ctx, customer.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細が無ければ404
		item, err := r.CartItems().FindByProductAndCustomer(ctx, productID, customer.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "item not in cart")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//削除して参照リストから外す
		if err := r.CartItems().DeleteByID(ctx, item.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		cart.CartItemIDs = removeItemID(cart.CartItemIDs, item.ID)
		if err := r.Carts().Save(ctx, cart); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, items, err = recalcCartTotal(ctx, r, cart)
		if err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		return CartView{}, err
	}

	return u.buildCartView(ctx, cart, items)
}

// user_idから顧客を解決。無ければaccount not found
func (u *CartUsecase) resolveCustomer(ctx context.Context, userID string) (model.Customer, error) {
	if userID == "" {
		return model.Customer{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	customer, err := u.customerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return customer, nil
}

// カートの合計を参照リストに残っている明細の合計から出し直して保存する。
// 存在しないIDはFindManyByIDsが黙って落とすので、参照が古くても合計は自己修復する。
func recalcCartTotal(ctx context.Context, r repo.TxRepos, cart model.Cart) (model.Cart, []model.CartItem, error) {
	items, err := r.CartItems().FindManyByIDs(ctx, cart.CartItemIDs)
	if err != nil {
		return model.Cart{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var total int64 = 0
	for _, it := range items {
		total += it.TotalPrice
	}

	cart.TotalPrice = total
	if err := r.Carts().Save(ctx, cart); err != nil {
		return model.Cart{}, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return cart, items, nil
}

// 明細とカートをまとめてCartViewを作る（商品タイトル・画像で補う）。
func (u *CartUsecase) buildCartView(ctx context.Context, cart model.Cart, items []model.CartItem) (CartView, error) {
	productIDs := make([]int64, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	titleByProduct := make(map[int64]string, len(products))
	for _, p := range products {
		titleByProduct[p.ID] = p.Title
	}

	medias, err := u.mediaRepo.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//商品ごとに最初の1枚だけ使う
	imageByProduct := make(map[int64]string, len(medias))
	for _, m := range medias {
		if _, ok := imageByProduct[m.ProductID]; !ok {
			imageByProduct[m.ProductID] = m.Path
		}
	}

	views := make([]CartItemView, 0, len(items))
	for _, it := range items {
		views = append(views, CartItemView{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Title:      titleByProduct[it.ProductID],
			Image:      imageByProduct[it.ProductID],
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}

	return CartView{
		ID:         cart.ID,
		CustomerID: cart.CustomerID,
		Items:      views,
		TotalPrice: cart.TotalPrice,
	}, nil
}

// 参照リストからIDを1つ除く
func removeItemID(ids []int64, target int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
