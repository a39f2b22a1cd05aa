package output

import (
	"gopkg.in/yaml.v3"

	"github.com/pranshuparmar/unhex/pkg/model"
)

func ToYAML(sockets []model.TCPSocket) (string, error) {
	if sockets == nil {
		sockets = []model.TCPSocket{}
	}
	data, err := yaml.Marshal(sockets)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
