// Package respond concentra a escrita de respostas JSON e a tradução de erros
// para os Handlers HTTP.
package respond

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"gocine/internal/domain"
	apperror "gocine/internal/errors"
	"gocine/internal/pkg/logger"
	"gocine/internal/pkg/middleware"
)

// JSON escreve data com o status informado.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz err para o status HTTP e escreve um domain.ErrorResponse.
// O log usa o logger da requisição, que já carrega o request_id.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	log = middleware.LoggerFromContext(r.Context(), log)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	JSON(w, log, status, domain.ErrorResponse{
		Code:      status,
		Category:  category,
		Message:   message,
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// Result escreve data em caso de sucesso ou o erro traduzido.
func Result(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}
	JSON(w, log, successStatus, data)
}

// Decode lê o corpo JSON da requisição em dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// PathID lê um parâmetro de rota numérico. Valores não numéricos viram ValidationError;
// a checagem de positividade fica com o serviço.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("%s deve ser um inteiro, recebido %q", name, raw))
	}
	return id, nil
}

// QueryInt lê um parâmetro de query inteiro, com valor padrão quando ausente.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("%s deve ser um inteiro, recebido %q", name, raw))
	}
	return v, nil
}
