package handlers_test

import (
	"encoding/json"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slugline/internal/app/configs"
)

type want struct {
	response    string
	contentType string
	code        int
}

var defaultConfig = configs.Config{
	BaseURL:       "http://localhost:8080",
	ServerAddress: "localhost:8080",
	AppEnv:        "production",
}

func toJSON(t require.TestingT, v interface{}) string {
	result, err := json.Marshal(v)
	require.NoError(t, err)

	return string(result)
}

type randStringGeneratorMock struct{ mock.Mock }

func (m *randStringGeneratorMock) Call(n int) (string, error) {
	args := m.Called(n)
	return args.String(0), args.Error(1)
}
