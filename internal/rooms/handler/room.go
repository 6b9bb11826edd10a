package handler

import (
	"encoding/json"
	"net/http"

	"campusbook/internal/rooms/service"
	httputil "campusbook/pkg/http"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateRoom", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateRoom(r.Context(), &room); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, room); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateRoom", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetRoom(r.Context(), ps.ByName("block"), ps.ByName("room"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRoom", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) GetAllRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllRooms", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	rooms, total, err := h.service.GetAllRooms(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllRooms", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, rooms, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAllRooms", "operation", "WritePaginated", "error", err)
	}
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteRoom(r.Context(), ps.ByName("block"), ps.ByName("room")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteRoom", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) CreateClub(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var club model.Club
	if err := json.NewDecoder(r.Body).Decode(&club); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateClub", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateClub(r.Context(), &club); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateClub", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, club); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateClub", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomHandler) GetClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	club, err := h.service.GetClub(r.Context(), ps.ByName("name"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetClub", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, club); err != nil {
		h.log.Error("failed to write success response", "handler", "GetClub", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) GetAllClubs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllClubs", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	clubs, err := h.service.GetAllClubs(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAllClubs", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, clubs); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAllClubs", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) AddClubMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var membership model.ClubMembership
	if err := json.NewDecoder(r.Body).Decode(&membership); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AddClubMember", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	membership.ClubName = ps.ByName("name")

	if err := h.service.AddClubMember(r.Context(), &membership); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AddClubMember", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, membership); err != nil {
		h.log.Error("failed to write created response", "handler", "AddClubMember", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomHandler) RemoveClubMember(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.RemoveClubMember(r.Context(), ps.ByName("name"), ps.ByName("email")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RemoveClubMember", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rooms", h.CreateRoom)
	router.GET("/api/v1/rooms", h.GetAllRooms)
	router.GET("/api/v1/rooms/:block/:room", h.GetRoom)
	router.DELETE("/api/v1/rooms/:block/:room", h.DeleteRoom)

	router.POST("/api/v1/clubs", h.CreateClub)
	router.GET("/api/v1/clubs", h.GetAllClubs)
	router.GET("/api/v1/clubs/:name", h.GetClub)
	router.POST("/api/v1/clubs/:name/members", h.AddClubMember)
	router.DELETE("/api/v1/clubs/:name/members/:email", h.RemoveClubMember)
}
