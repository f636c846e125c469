package http

import (
	"net/http"

	"github.com/cmlabs-hris/finops-backend-go/internal/domain/wallet"
	"github.com/cmlabs-hris/finops-backend-go/internal/handler/http/response"
)

type WalletHandler interface {
	ListTransactions(w http.ResponseWriter, r *http.Request)
	// Sync pulls one source when ?source is given, otherwise every configured source
	Sync(w http.ResponseWriter, r *http.Request)
}

type walletHandlerImpl struct {
	walletService wallet.WalletService
}

func NewWalletHandler(walletService wallet.WalletService) WalletHandler {
	return &walletHandlerImpl{walletService: walletService}
}

// ListTransactions handles GET /wallet/transactions
func (h *walletHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := wallet.WalletTransactionFilter{
		Source:    optionalQuery(r, "source"),
		Direction: optionalQuery(r, "direction"),
	}
	filter.Page, filter.Limit = pagination(r)

	result, err := h.walletService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// Sync handles POST /wallet/sync
func (h *walletHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		results, err := h.walletService.SyncAll(r.Context())
		if err != nil && len(results) == 0 {
			response.HandleError(w, err)
			return
		}
		if err != nil {
			response.SuccessWithMessage(w, err.Error(), results)
			return
		}
		response.Success(w, results)
		return
	}

	result, err := h.walletService.Sync(r.Context(), wallet.Source(source))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
