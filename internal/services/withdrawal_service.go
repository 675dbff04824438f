package services

import (
	"fmt"
	"time"

	"earnings-service/internal/models"
	"earnings-service/pkg/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WithdrawalService struct {
	DB       *gorm.DB
	Settings *SettingsService
	Helper   *HelperService
}

func NewWithdrawalService(db *gorm.DB, settings *SettingsService, helper *HelperService) *WithdrawalService {
	return &WithdrawalService{DB: db, Settings: settings, Helper: helper}
}

type WithdrawRequestDTO struct {
	UserId         int
	Type           string
	Amount         float64
	Method         string
	AccountDetails string
}

// balanceColumn maps a withdrawal type to its users column. The type values
// happen to equal the column names, but the mapping stays explicit so an
// unexpected value never reaches SQL.
func balanceColumn(withdrawalType string) (string, bool) {
	switch withdrawalType {
	case models.WithdrawalTypeBalance:
		return "balance", true
	case models.WithdrawalTypeBonuses:
		return "bonuses", true
	case models.WithdrawalTypeTeamEarnings:
		return "team_earnings", true
	}
	return "", false
}

func balanceOf(user models.User, withdrawalType string) (float64, bool) {
	switch withdrawalType {
	case models.WithdrawalTypeBalance:
		return user.Balance, true
	case models.WithdrawalTypeBonuses:
		return user.Bonuses, true
	case models.WithdrawalTypeTeamEarnings:
		return user.TeamEarnings, true
	}
	return 0, false
}

// RequestWithdrawal validates eligibility and inserts a pending request. The
// row snapshots the user's contact/method info and the titles of their active
// offers at submission time.
func (s *WithdrawalService) RequestWithdrawal(data WithdrawRequestDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewErrorResponse("Amount is required", nil, 400), nil
	}

	var user models.User
	if err := s.DB.First(&user, data.UserId).Error; err != nil {
		return common.NewErrorResponse("User not found", nil, 404), nil
	}

	available, ok := balanceOf(user, data.Type)
	if !ok {
		return common.NewErrorResponse(fmt.Sprintf("Unknown withdrawal type %q", data.Type), nil, 400), nil
	}
	if available < data.Amount {
		return common.NewErrorResponse("You have insufficient funds to cover the withdrawal request.", nil, 400), nil
	}

	settings, err := s.Settings.GetWithdrawalSettings()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	history, err := s.todayHistory(data.UserId, now)
	if err != nil {
		return nil, err
	}

	if result := CanWithdraw(data.Amount, user.Package, now, history, settings); !result.Allowed {
		return common.NewErrorResponse(result.Message, result, 400), nil
	}

	request := models.WithdrawalRequest{
		UserId:          data.UserId,
		Reference:       uuid.NewString(),
		Type:            data.Type,
		Amount:          data.Amount,
		Method:          data.Method,
		AccountDetails:  data.AccountDetails,
		ContactSnapshot: fmt.Sprintf("%s <%s> %s", user.DisplayName, user.Email, user.Phone),
		ActiveOffers:    s.activeOfferTitles(data.UserId),
		Status:          models.WithdrawalPending,
	}
	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}

	return common.NewSuccessResponse(request, "Withdrawal request submitted"), nil
}

// todayHistory loads the user's requests created on now's calendar day. The
// evaluator re-filters by status and cutover.
func (s *WithdrawalService) todayHistory(userId int, now time.Time) ([]models.WithdrawalRequest, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var history []models.WithdrawalRequest
	err := s.DB.Where("user_id = ? AND created_at >= ? AND created_at < ?", userId, dayStart, dayStart.AddDate(0, 0, 1)).
		Find(&history).Error
	return history, err
}

// activeOfferTitles joins the titles of the user's active offers; descriptive
// metadata only, never read back for logic.
func (s *WithdrawalService) activeOfferTitles(userId int) string {
	var titles []string
	s.DB.Model(&models.UserOffer{}).
		Select("offers.title").
		Joins("JOIN offers ON offers.id = user_offers.offer_id").
		Where("user_offers.user_id = ? AND user_offers.active = ?", userId, true).
		Scan(&titles)

	result := ""
	for i, t := range titles {
		if i > 0 {
			result += ", "
		}
		result += t
	}
	return result
}

type PayWithdrawalDTO struct {
	Id            int
	AdminNote     string
	ProofImageUrl string
}

// PayWithdrawal transitions a pending request to paid and deducts the amount
// from the balance bucket matching the request type. The status flip and the
// conditional decrement share one transaction, so a short balance rolls the
// flip back.
func (s *WithdrawalService) PayWithdrawal(data PayWithdrawalDTO) (interface{}, error) {
	var request models.WithdrawalRequest
	if err := s.DB.First(&request, data.Id).Error; err != nil {
		return common.NewErrorResponse("Withdrawal request not found", nil, 404), nil
	}

	if request.Status != models.WithdrawalPending {
		return common.NewErrorResponse("Withdrawal request already processed", nil, 400), nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.WithdrawalRequest{}).
			Where("id = ? AND status = ?", request.ID, models.WithdrawalPending).
			Updates(map[string]interface{}{
				"status":          models.WithdrawalPaid,
				"admin_note":      data.AdminNote,
				"proof_image_url": data.ProofImageUrl,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("withdrawal request already processed")
		}

		column, ok := balanceColumn(request.Type)
		if !ok {
			return fmt.Errorf("unknown withdrawal type %q", request.Type)
		}
		dec := tx.Model(&models.User{}).
			Where("id = ? AND "+column+" >= ?", request.UserId, request.Amount).
			UpdateColumn(column, gorm.Expr(column+" - ?", request.Amount))
		if dec.Error != nil {
			return dec.Error
		}
		if dec.RowsAffected == 0 {
			return fmt.Errorf("insufficient %s balance for user %d", column, request.UserId)
		}

		return nil
	})
	if err != nil {
		return common.NewErrorResponse(err.Error(), nil, 400), nil
	}

	if err := s.Helper.SaveTransaction(TransactionData{
		UserId:      request.UserId,
		Type:        models.TrxWithdrawal,
		Amount:      request.Amount,
		Description: fmt.Sprintf("Withdrawal %s paid (%s)", request.Reference, request.Type),
	}); err != nil {
		// Payment is committed; the missing audit row is logged by the caller.
		return nil, err
	}

	return common.NewSuccessResponse(nil, "Withdrawal request paid"), nil
}

type RejectWithdrawalDTO struct {
	Id              int
	RejectionReason string
}

// RejectWithdrawal transitions a pending request to rejected. No balance
// mutation; the funds were never reserved.
func (s *WithdrawalService) RejectWithdrawal(data RejectWithdrawalDTO) (interface{}, error) {
	var request models.WithdrawalRequest
	if err := s.DB.First(&request, data.Id).Error; err != nil {
		return common.NewErrorResponse("Withdrawal request not found", nil, 404), nil
	}

	if request.Status != models.WithdrawalPending {
		return common.NewErrorResponse("Withdrawal request already processed", nil, 400), nil
	}

	res := s.DB.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", request.ID, models.WithdrawalPending).
		Updates(map[string]interface{}{
			"status":           models.WithdrawalRejected,
			"rejection_reason": data.RejectionReason,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewErrorResponse("Withdrawal request already processed", nil, 400), nil
	}

	return common.NewSuccessResponse(nil, "Withdrawal request rejected"), nil
}

type FetchUserWithdrawalsDTO struct {
	UserId  int
	Pending bool
}

func (s *WithdrawalService) FetchUserWithdrawals(data FetchUserWithdrawalsDTO) (common.SuccessResponse, error) {
	query := s.DB.Where("user_id = ?", data.UserId)
	if data.Pending {
		query = query.Where("status = ?", models.WithdrawalPending)
	}

	var withdrawals []models.WithdrawalRequest
	if err := query.Order("created_at DESC").Find(&withdrawals).Error; err != nil {
		return common.SuccessResponse{}, err
	}
	return common.NewSuccessResponse(withdrawals, "Successful"), nil
}

type ListWithdrawalRequestsDTO struct {
	From   string
	To     string
	Status string
	UserId int
	Page   int
	Limit  int
}

// ListWithdrawalRequests is the admin console listing: filtered, paginated,
// with the aggregate amount over the date filter.
func (s *WithdrawalService) ListWithdrawalRequests(data ListWithdrawalRequestsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.WithdrawalRequest{})
	if data.From != "" && data.To != "" {
		query = query.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}
	if data.UserId != 0 {
		query = query.Where("user_id = ?", data.UserId)
	}
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var list []models.WithdrawalRequest
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var totalAmount float64
	sumQuery := s.DB.Model(&models.WithdrawalRequest{})
	if data.From != "" && data.To != "" {
		sumQuery = sumQuery.Where("created_at BETWEEN ? AND ?", data.From, data.To)
	}
	sumQuery.Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount)

	return common.PaginateResponse(map[string]interface{}{
		"data":        list,
		"totalAmount": totalAmount,
	}, total, page, limit, "Withdrawal requests fetched successfully"), nil
}
