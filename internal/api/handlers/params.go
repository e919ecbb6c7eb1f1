package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ErrInvalidPathID возвращается, когда идентификатор в пути не положительное целое
var ErrInvalidPathID = errors.New("invalid path id")

// PathID достает положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is missing", ErrInvalidPathID, name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathID, name, raw)
	}
	return id, nil
}
