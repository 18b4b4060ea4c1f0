package mocks

//go:generate mockgen -destination=./mock_broker.go -package=mocks github.com/quantpilot/backtest/internal/strategy Broker
