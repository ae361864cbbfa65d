package testfixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/salas-reservas/internal/apiclient"
	"github.com/BruksfildServices01/salas-reservas/internal/models"
)

// Call is one request seen by the fake backend.
type Call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

type failure struct {
	status int
	body   string
}

// Backend is an in-memory stand-in for the reservations REST API.
type Backend struct {
	t   *testing.T
	srv *httptest.Server

	mu            sync.Mutex
	nextID        int64
	locais        []models.Local
	salas         []models.Sala
	reservas      []models.Reserva
	usuarios      []models.Usuario
	participantes []models.Participante
	logins        map[string]models.AuthResponse
	calls         []Call
	failures      map[string]failure
	hold          chan struct{}
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		t:        t,
		nextID:   100,
		logins:   make(map[string]models.AuthResponse),
		failures: make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /locais", b.listLocais)
	mux.HandleFunc("GET /locais/{id}", b.getLocal)
	mux.HandleFunc("POST /locais", b.saveLocal)
	mux.HandleFunc("PUT /locais/{id}", b.saveLocal)
	mux.HandleFunc("DELETE /locais/{id}", b.deleteLocal)

	mux.HandleFunc("GET /salas", b.listSalas)
	mux.HandleFunc("GET /salas/{id}", b.getSala)
	mux.HandleFunc("POST /salas", b.saveSala)
	mux.HandleFunc("PUT /salas/{id}", b.saveSala)
	mux.HandleFunc("DELETE /salas/{id}", b.deleteSala)

	mux.HandleFunc("GET /reservas", b.listReservas)
	mux.HandleFunc("GET /reservas/{id}", b.getReserva)
	mux.HandleFunc("POST /reservas", b.saveReserva)
	mux.HandleFunc("PUT /reservas/{id}", b.saveReserva)
	mux.HandleFunc("DELETE /reservas/{id}", b.deleteReserva)
	mux.HandleFunc("GET /reservas/{id}/participantes", b.listParticipantes)

	mux.HandleFunc("POST /participantes", b.addParticipante)
	mux.HandleFunc("DELETE /participantes/{id}", b.removeParticipante)

	mux.HandleFunc("GET /usuarios", b.listUsuarios)
	mux.HandleFunc("GET /usuarios/search", b.searchUsuarios)

	mux.HandleFunc("POST /auth/google", b.login)

	b.srv = httptest.NewServer(b.intercept(mux))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) URL() string {
	return b.srv.URL
}

// Client returns an API client pointed at the fake, without retries.
func (b *Backend) Client() *apiclient.Client {
	return apiclient.New(b.srv.URL, apiclient.WithRetries(0))
}

// ====================================================
// CONTROL
// ====================================================

// Fail makes every request to "METHOD /path" answer status with body.
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	b.failures[method+" "+path] = failure{status: status, body: body}
	b.mu.Unlock()
}

func (b *Backend) ClearFailures() {
	b.mu.Lock()
	b.failures = make(map[string]failure)
	b.mu.Unlock()
}

// HoldWrites blocks POST and PUT requests until the returned func is called.
func (b *Backend) HoldWrites() (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.hold = ch
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.hold = nil
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallCount counts requests matching method and path.
func (b *Backend) CallCount(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) LastCall(method, path string) (Call, bool) {
	calls := b.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method && calls[i].Path == path {
			return calls[i], true
		}
	}
	return Call{}, false
}

func (b *Backend) ResetCalls() {
	b.mu.Lock()
	b.calls = nil
	b.mu.Unlock()
}

// ====================================================
// SEEDING
// ====================================================

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) SeedLocal(nome string, ativo bool) models.Local {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := models.Local{ID: b.id(), Nome: nome, Ativo: ativo}
	b.locais = append(b.locais, l)
	return l
}

func (b *Backend) SeedSala(localID int64, nome string, ativo bool) models.Sala {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := models.Sala{ID: b.id(), LocalID: localID, Nome: nome, Ativo: ativo}
	b.salas = append(b.salas, s)
	return s
}

// SeedReserva stores r, assigning an id when r has none.
func (b *Backend) SeedReserva(r models.Reserva) models.Reserva {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.ID == 0 {
		r.ID = b.id()
	}
	b.reservas = append(b.reservas, r)
	return r
}

func (b *Backend) SeedUsuario(nome, email string) models.Usuario {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := models.Usuario{ID: b.id(), Nome: nome, Email: email, GoogleID: "g-" + email}
	b.usuarios = append(b.usuarios, u)
	return u
}

func (b *Backend) SeedParticipante(p models.Participante) models.Participante {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.ID == 0 {
		p.ID = b.id()
	}
	b.participantes = append(b.participantes, p)
	return p
}

// SeedLogin makes POST /auth/google accept googleToken and answer resp.
func (b *Backend) SeedLogin(googleToken string, resp models.AuthResponse) {
	b.mu.Lock()
	b.logins[googleToken] = resp
	b.mu.Unlock()
}

func (b *Backend) Reservas() []models.Reserva {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Reserva(nil), b.reservas...)
}

func (b *Backend) Participantes() []models.Participante {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Participante(nil), b.participantes...)
}

// ====================================================
// TRANSPORT
// ====================================================

func (b *Backend) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
		})
		f, failing := b.failures[r.Method+" "+r.URL.Path]
		hold := b.hold
		b.mu.Unlock()

		if hold != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
			<-hold
		}

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			io.WriteString(w, f.body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func bearer(r *http.Request) (string, bool) {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return tok, ok && tok != ""
}

func boolParam(r *http.Request, name string) (bool, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	return b, err == nil
}

// ====================================================
// LOCAIS
// ====================================================

func (b *Backend) listLocais(w http.ResponseWriter, r *http.Request) {
	ativo, filter := boolParam(r, "ativo")

	b.mu.Lock()
	out := []models.Local{}
	for _, l := range b.locais {
		if filter && l.Ativo != ativo {
			continue
		}
		out = append(out, l)
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getLocal(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.locais {
		if l.ID == pathID(r) {
			writeJSON(w, http.StatusOK, l)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Local não encontrado")
}

func (b *Backend) saveLocal(w http.ResponseWriter, r *http.Request) {
	var in models.LocalFormData
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	id := pathID(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.locais {
		if l.ID != id && strings.EqualFold(l.Nome, in.Nome) {
			writeError(w, http.StatusConflict, "local duplicado")
			return
		}
	}

	if id == 0 {
		l := models.Local{ID: b.id(), Nome: in.Nome, Descricao: in.Descricao, Ativo: in.Ativo}
		b.locais = append(b.locais, l)
		writeJSON(w, http.StatusCreated, l)
		return
	}
	for i := range b.locais {
		if b.locais[i].ID == id {
			b.locais[i].Nome, b.locais[i].Descricao, b.locais[i].Ativo = in.Nome, in.Descricao, in.Ativo
			writeJSON(w, http.StatusOK, b.locais[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Local não encontrado")
}

func (b *Backend) deleteLocal(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.locais {
		if l.ID == pathID(r) {
			b.locais = append(b.locais[:i], b.locais[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Local não encontrado")
}

// ====================================================
// SALAS
// ====================================================

func (b *Backend) listSalas(w http.ResponseWriter, r *http.Request) {
	ativo, filterAtivo := boolParam(r, "ativo")
	localID, _ := strconv.ParseInt(r.URL.Query().Get("local_id"), 10, 64)

	b.mu.Lock()
	out := []models.Sala{}
	for _, s := range b.salas {
		if filterAtivo && s.Ativo != ativo {
			continue
		}
		if localID != 0 && s.LocalID != localID {
			continue
		}
		out = append(out, s)
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (b *Backend) getSala(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.salas {
		if s.ID == pathID(r) {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Sala não encontrada")
}

func (b *Backend) saveSala(w http.ResponseWriter, r *http.Request) {
	var in models.SalaPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	id := pathID(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.salas {
		if s.ID != id && s.LocalID == in.LocalID && strings.EqualFold(s.Nome, in.Nome) {
			writeError(w, http.StatusConflict, "sala duplicada")
			return
		}
	}

	s := models.Sala{LocalID: in.LocalID, Nome: in.Nome, Capacidade: in.Capacidade, Recursos: in.Recursos, Ativo: in.Ativo}
	if id == 0 {
		s.ID = b.id()
		b.salas = append(b.salas, s)
		writeJSON(w, http.StatusCreated, s)
		return
	}
	for i := range b.salas {
		if b.salas[i].ID == id {
			s.ID = id
			b.salas[i] = s
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Sala não encontrada")
}

func (b *Backend) deleteSala(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.salas {
		if s.ID == pathID(r) {
			b.salas = append(b.salas[:i], b.salas[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Sala não encontrada")
}

// ====================================================
// RESERVAS
// ====================================================

func (b *Backend) listReservas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, _ := models.ParseInstant(q.Get("data_inicio"))
	to, _ := models.ParseInstant(q.Get("data_fim"))

	b.mu.Lock()
	out := []models.Reserva{}
	for _, res := range b.reservas {
		if v := q.Get("sala"); v != "" && res.SalaDisplay() != v {
			continue
		}
		if v := q.Get("local"); v != "" && res.LocalDisplay() != v {
			continue
		}
		if v := q.Get("responsavel"); v != "" && !strings.Contains(strings.ToLower(res.Responsavel), strings.ToLower(v)) {
			continue
		}
		if !from.IsZero() && res.DataFim.Before(from) {
			continue
		}
		if !to.IsZero() && res.DataInicio.After(to) {
			continue
		}
		out = append(out, res)
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DataInicio.Before(out[j].DataInicio.Time) })
	writeJSON(w, http.StatusOK, map[string]any{"results": out, "total": len(out)})
}

func (b *Backend) getReserva(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, res := range b.reservas {
		if res.ID == pathID(r) {
			writeJSON(w, http.StatusOK, res)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Reserva não encontrada")
}

func (b *Backend) saveReserva(w http.ResponseWriter, r *http.Request) {
	token, ok := bearer(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var in models.ReservaPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	start, err1 := models.ParseInstant(in.DataInicio)
	end, err2 := models.ParseInstant(in.DataFim)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Datas inválidas")
		return
	}
	id := pathID(r)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, res := range b.reservas {
		if res.ID != id && res.SalaID == in.SalaID && start.Before(res.DataFim.Time) && res.DataInicio.Before(end) {
			writeError(w, http.StatusConflict, "Conflito de horário")
			return
		}
	}

	desc := in.Descricao
	res := models.Reserva{
		LocalID:        in.LocalID,
		SalaID:         in.SalaID,
		Local:          in.Local,
		Sala:           in.Sala,
		DataInicio:     models.NewInstant(start),
		DataFim:        models.NewInstant(end),
		Responsavel:    in.Responsavel,
		Descricao:      &desc,
		Cafe:           in.Cafe,
		QuantidadeCafe: in.QuantidadeCafe,
	}

	if id == 0 {
		res.ID = b.id()
		email := TokenEmail(token)
		res.CriadoPorEmail = &email
		b.reservas = append(b.reservas, res)
		writeJSON(w, http.StatusCreated, res)
		return
	}
	for i := range b.reservas {
		if b.reservas[i].ID == id {
			res.ID = id
			res.CriadoPorEmail = b.reservas[i].CriadoPorEmail
			b.reservas[i] = res
			writeJSON(w, http.StatusOK, res)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Reserva não encontrada")
}

func (b *Backend) deleteReserva(w http.ResponseWriter, r *http.Request) {
	if _, ok := bearer(r); !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, res := range b.reservas {
		if res.ID == pathID(r) {
			b.reservas = append(b.reservas[:i], b.reservas[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Reserva não encontrada")
}

// ====================================================
// PARTICIPANTES
// ====================================================

func (b *Backend) listParticipantes(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	b.mu.Lock()
	out := []models.Participante{}
	for _, p := range b.participantes {
		if p.ReservaID == id {
			out = append(out, p)
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

func (b *Backend) addParticipante(w http.ResponseWriter, r *http.Request) {
	var in models.ParticipantePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p := models.Participante{ID: b.id(), ReservaID: in.ReservaID, UsuarioID: in.UsuarioID, NomeManual: in.NomeManual}
	if in.UsuarioID != nil {
		for _, u := range b.usuarios {
			if u.ID == *in.UsuarioID {
				p.Usuario = &u
			}
		}
		if p.Usuario == nil {
			writeError(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
	}
	b.participantes = append(b.participantes, p)
	writeJSON(w, http.StatusCreated, p)
}

func (b *Backend) removeParticipante(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, p := range b.participantes {
		if p.ID == pathID(r) {
			b.participantes = append(b.participantes[:i], b.participantes[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Participante não encontrado")
}

// ====================================================
// USUARIOS / AUTH
// ====================================================

func (b *Backend) listUsuarios(w http.ResponseWriter, r *http.Request) {
	if _, ok := bearer(r); !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}
	q := r.URL.Query()
	skip, _ := strconv.Atoi(q.Get("skip"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	search := strings.ToLower(q.Get("search"))

	b.mu.Lock()
	matched := []models.Usuario{}
	for _, u := range b.usuarios {
		if search == "" || strings.Contains(strings.ToLower(u.Nome+" "+u.Email), search) {
			matched = append(matched, u)
		}
	}
	b.mu.Unlock()

	if skip > len(matched) {
		skip = len(matched)
	}
	end := len(matched)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	writeJSON(w, http.StatusOK, matched[skip:end])
}

func (b *Backend) searchUsuarios(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	b.mu.Lock()
	out := []models.Usuario{}
	for _, u := range b.usuarios {
		if strings.Contains(strings.ToLower(u.Nome+" "+u.Email), q) {
			out = append(out, u)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token string `json:"token"`
	}
	json.NewDecoder(r.Body).Decode(&in)

	b.mu.Lock()
	resp, ok := b.logins[in.Token]
	b.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnauthorized, "Token do Google inválido")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reserva builds a reservation fixture in room sala of local, starting at
// start and lasting d.
func Reserva(local models.Local, sala models.Sala, start time.Time, d time.Duration, responsavel, creator string) models.Reserva {
	return models.Reserva{
		LocalID:        local.ID,
		SalaID:         sala.ID,
		Local:          local.Nome,
		Sala:           sala.Nome,
		DataInicio:     models.NewInstant(start),
		DataFim:        models.NewInstant(start.Add(d)),
		Responsavel:    responsavel,
		CriadoPorEmail: &creator,
	}
}

// LoginFor seeds a login for email and returns the Google token to use.
func (b *Backend) LoginFor(email, name string) (googleToken, backendToken string) {
	googleToken = fmt.Sprintf("google-%s", email)
	backendToken = Token(float64(len(email)), email, name)
	b.SeedLogin(googleToken, models.AuthResponse{
		Token: backendToken,
		User:  models.AuthUser{ID: models.FlexID(strconv.Itoa(len(email))), Email: email, Name: name},
	})
	return googleToken, backendToken
}
