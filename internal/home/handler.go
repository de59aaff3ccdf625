package home

import (
	"net/http"

	"fitness-scheduler/common/httputil"

	"github.com/go-chi/chi/v5"
)

const welcomePage = `<h1>Welcome to the Fitness Scheduler!</h1>` +
	`<h2>Let's get yoked!</h2><br>` +
	`<img src="https://as1.ftcdn.net/v2/jpg/05/53/59/18/1000_F_553591884_dkgQVT2nF94pyW1PkD6rzx5hzIWtt256.jpg" >`

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.Home)
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithHTML(w, http.StatusOK, welcomePage)
}
