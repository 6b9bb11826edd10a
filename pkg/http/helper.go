package http

import (
	"net/http"
	"strconv"
	"time"

	"campusbook/pkg/config"
	apperrors "campusbook/pkg/errors"
	"campusbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractBookingID reads the three composite-key path components
// (:block/:room/:start) and builds the identifier. The start component is
// RFC3339.
func ExtractBookingID(ps httprouter.Params) (model.BookingID, error) {
	block := ps.ByName("block")
	roomNo := ps.ByName("room")
	startStr := ps.ByName("start")

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return model.BookingID{}, apperrors.InvalidInput("invalid start time, must be RFC3339: " + startStr)
	}

	id, err := model.NewBookingID(block, roomNo, start)
	if err != nil {
		return model.BookingID{}, apperrors.InvalidInput(err.Error())
	}
	return id, nil
}
