package handler

import (
	"net/http"

	"tripsplit-go/internal/auth"
	ledgerdomain "tripsplit-go/internal/domain/ledger"
	repaymentdomain "tripsplit-go/internal/domain/repayment"
	tripdomain "tripsplit-go/internal/domain/trip"
	userdomain "tripsplit-go/internal/domain/user"
	"tripsplit-go/pkg/logger"
)

type Handlers struct {
	Users      *userdomain.Service
	Trips      *tripdomain.Service
	Ledger     *ledgerdomain.Service
	Repayments *repaymentdomain.Service

	tokens    *auth.JWTManager
	uploadDir string
	secure    bool
	log       logger.Logger
}

func New(
	users *userdomain.Service,
	trips *tripdomain.Service,
	ledger *ledgerdomain.Service,
	repayments *repaymentdomain.Service,
	tokens *auth.JWTManager,
	uploadDir string,
	secureCookies bool,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:      users,
		Trips:      trips,
		Ledger:     ledger,
		Repayments: repayments,
		tokens:     tokens,
		uploadDir:  uploadDir,
		secure:     secureCookies,
		log:        log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
}
