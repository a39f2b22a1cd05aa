package output

import (
	"encoding/json"

	"github.com/pranshuparmar/unhex/pkg/model"
)

func ToJSON(sockets []model.TCPSocket) (string, error) {
	if sockets == nil {
		sockets = []model.TCPSocket{}
	}
	data, err := json.MarshalIndent(sockets, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
