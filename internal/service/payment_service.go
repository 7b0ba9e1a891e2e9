package service

import (
	"bookquiz_backend/internal/config"
	"bookquiz_backend/internal/model"
	"bookquiz_backend/internal/util"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"
)

// PaymentStore 支付订单持久化的窄接口，由 repository.PaymentRepository 实现
type PaymentStore interface {
	Create(payment *model.Payment) error
	Update(payment *model.Payment) error
	FindByOrderID(orderID string) (*model.Payment, error)
	FindByUser(userID uint, page, limit int) ([]model.Payment, int64, error)
}

type PaymentService struct {
	Payments PaymentStore
	Books    BookStore
	Cfg      config.PaymentConfig
	Client   *http.Client
}

func NewPaymentService(payments PaymentStore, books BookStore, cfg config.PaymentConfig) *PaymentService {
	return &PaymentService{
		Payments: payments,
		Books:    books,
		Cfg:      cfg,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayReadyRequest struct {
	CID            string `json:"cid"`
	PartnerOrderID string `json:"partner_order_id"`
	PartnerUserID  string `json:"partner_user_id"`
	ItemName       string `json:"item_name"`
	Quantity       int    `json:"quantity"`
	TotalAmount    int    `json:"total_amount"`
	ApprovalURL    string `json:"approval_url"`
	CancelURL      string `json:"cancel_url"`
	FailURL        string `json:"fail_url"`
}

type gatewayReadyResponse struct {
	TID         string `json:"tid"`
	RedirectURL string `json:"next_redirect_pc_url"`
}

type gatewayApproveRequest struct {
	CID            string `json:"cid"`
	TID            string `json:"tid"`
	PartnerOrderID string `json:"partner_order_id"`
	PartnerUserID  string `json:"partner_user_id"`
	PGToken        string `json:"pg_token"`
}

type gatewayApproveResponse struct {
	AID        string `json:"aid"`
	ApprovedAt string `json:"approved_at"`
}

func (s *PaymentService) callGateway(path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.Cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "SECRET_KEY "+s.Cfg.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// PreparePayment 创建 READY 状态订单并向网关发起 ready 请求，
// 返回用户侧跳转地址
func (s *PaymentService) PreparePayment(userID, bookID uint, approvalURL, cancelURL, failURL string) (*model.Payment, string, error) {
	book, err := s.Books.FindByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", util.ErrBookNotFound
		}
		return nil, "", err
	}

	payment := &model.Payment{
		OrderID: model.GenerateUUID(),
		UserID:  userID,
		BookID:  book.ID,
		Amount:  book.Price,
		Status:  model.PaymentReady,
	}

	var ready gatewayReadyResponse
	err = s.callGateway("/online/v1/payment/ready", gatewayReadyRequest{
		CID:            s.Cfg.CID,
		PartnerOrderID: payment.OrderID,
		PartnerUserID:  fmt.Sprintf("%d", userID),
		ItemName:       book.Title,
		Quantity:       1,
		TotalAmount:    payment.Amount,
		ApprovalURL:    approvalURL,
		CancelURL:      cancelURL,
		FailURL:        failURL,
	}, &ready)
	if err != nil {
		return nil, "", err
	}

	payment.TID = ready.TID
	if err := s.Payments.Create(payment); err != nil {
		return nil, "", err
	}

	return payment, ready.RedirectURL, nil
}

// ApprovePayment 网关回跳后的确认步骤
func (s *PaymentService) ApprovePayment(orderID, pgToken string) (*model.Payment, error) {
	payment, err := s.getPayment(orderID)
	if err != nil {
		return nil, err
	}

	var approve gatewayApproveResponse
	err = s.callGateway("/online/v1/payment/approve", gatewayApproveRequest{
		CID:            s.Cfg.CID,
		TID:            payment.TID,
		PartnerOrderID: payment.OrderID,
		PartnerUserID:  fmt.Sprintf("%d", payment.UserID),
		PGToken:        pgToken,
	}, &approve)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.Status = model.PaymentApproved
	payment.ApprovedAt = &now
	if err := s.Payments.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) CancelPayment(orderID string) (*model.Payment, error) {
	payment, err := s.getPayment(orderID)
	if err != nil {
		return nil, err
	}
	payment.Status = model.PaymentCanceled
	if err := s.Payments.Update(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ListPayments(userID uint, page, limit int) ([]model.Payment, int64, error) {
	return s.Payments.FindByUser(userID, page, limit)
}

func (s *PaymentService) getPayment(orderID string) (*model.Payment, error) {
	payment, err := s.Payments.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}
