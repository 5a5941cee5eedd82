package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/hance08/tally/internal/errors"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
)

// Handler serves the ledger endpoints.
type Handler struct {
	svc *service.Service
}

// CreateAccountRequest is the body of POST /accounts.
type CreateAccountRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Notes    string   `json:"notes" binding:"max=4096"`
	Typ      string   `json:"typ" binding:"required,account_kind"`
	Opening  []string `json:"opening" binding:"dive,required"`
	Disabled bool     `json:"disabled"`
}

// UpdateAccountRequest is the body of PATCH /accounts/:id. Fields that are
// present become operations, applied in the order name, notes, enabled.
type UpdateAccountRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Notes   *string `json:"notes" binding:"omitempty,max=4096"`
	Enabled *bool   `json:"enabled"`
}

// AddTransactionRequest is the body of POST /transactions. Accounts may be
// given by id or by name.
type AddTransactionRequest struct {
	Type      string `json:"type" binding:"required,transaction_kind"`
	Amount    string `json:"amount" binding:"required"`
	NewAmount string `json:"new_amount"`
	Party     string `json:"party"`
	Acc1      string `json:"acc_1" binding:"required"`
	Acc2      string `json:"acc_2" binding:"required"`
	Notes     string `json:"notes" binding:"max=4096"`
}

// fail hands err to ErrorHandler, which renders the response.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.fail(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

// pathAccountID parses the :id path parameter.
func pathAccountID(c *gin.Context) (model.AccountID, error) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		return "", err
	}
	return model.AccountID(id), nil
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, err := pathAccountID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	account, err := h.svc.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if !h.bind(c, &req) {
		return
	}
	kind, err := model.ParseAccountKind(req.Typ)
	if err != nil {
		h.fail(c, err)
		return
	}
	opening := model.Balances{}
	for _, text := range req.Opening {
		amount, err := model.ParseInput(text)
		if err != nil {
			h.fail(c, err)
			return
		}
		opening.Add(amount)
	}

	account, err := h.svc.Account.CreateAccount(c.Request.Context(), service.CreateAccountInput{
		Name:     req.Name,
		Notes:    req.Notes,
		Kind:     kind,
		Opening:  opening,
		Disabled: req.Disabled,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": account})
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, err := pathAccountID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req UpdateAccountRequest
	if !h.bind(c, &req) {
		return
	}

	var ops []model.AccountOp
	if req.Name != nil {
		ops = append(ops, model.RenameOp(*req.Name))
	}
	if req.Notes != nil {
		ops = append(ops, model.SetNotesOp(*req.Notes))
	}
	if req.Enabled != nil {
		if *req.Enabled {
			ops = append(ops, model.EnableOp())
		} else {
			ops = append(ops, model.DisableOp())
		}
	}

	account, err := h.svc.Account.UpdateAccount(c.Request.Context(), id, ops...)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *Handler) ListAccountTransactions(c *gin.Context) {
	id, err := pathAccountID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	txs, err := h.svc.Transaction.GetTransactions(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	txs, err := h.svc.Transaction.GetTransactions(c.Request.Context(), "")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (h *Handler) AddTransaction(c *gin.Context) {
	var req AddTransactionRequest
	if !h.bind(c, &req) {
		return
	}
	in, err := h.svc.Transaction.ParseTransactionInput(c.Request.Context(), service.RawTransactionInput{
		Kind:      model.TransactionKind(req.Type),
		Amount:    req.Amount,
		NewAmount: req.NewAmount,
		Party:     req.Party,
		Acc1:      req.Acc1,
		Acc2:      req.Acc2,
		Notes:     req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	result, err := h.svc.Transaction.AddTransaction(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": result})
}

func (h *Handler) ListCommands(c *gin.Context) {
	cmds, err := h.svc.Commands(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commands": cmds})
}

// ApplyCommand accepts a command in its wire form. A command id seen before
// answers 200 with the original result instead of 201.
func (h *Handler) ApplyCommand(c *gin.Context) {
	var cmd model.Command
	if err := c.ShouldBindJSON(&cmd); err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			err = apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		h.fail(c, err)
		return
	}
	result, err := h.svc.Apply(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"result": result})
}

func (h *Handler) HasCommand(c *gin.Context) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok, err := h.svc.ContainsCommand(c.Request.Context(), model.CommandID(id))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "committed": ok})
}

func (h *Handler) Verify(c *gin.Context) {
	report, err := h.svc.Verify(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
