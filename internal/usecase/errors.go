package usecase

import (
	"net/http"

	"github.com/BruksfildServices01/salas-reservas/internal/httperr"
)

var (
	ErrBusy         = httperr.NewBusiness(http.StatusConflict, "busy", "Aguarde a conclusão da operação em andamento")
	ErrNotCreator   = httperr.NewBusiness(http.StatusForbidden, "not_creator", "Apenas quem criou a reserva pode alterá-la")
	ErrForbidden    = httperr.NewBusiness(http.StatusForbidden, "forbidden", "Você não tem permissão para acessar esta página")
	ErrNotConfirmed = httperr.NewBusiness(http.StatusBadRequest, "not_confirmed", "Confirme a remoção antes de continuar")
	ErrNotFound     = httperr.NewBusiness(http.StatusNotFound, "not_found", "Registro não encontrado")
	ErrDialogClosed = httperr.NewBusiness(http.StatusConflict, "dialog_closed", "O formulário não está aberto")
)
