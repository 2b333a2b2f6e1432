// Package metrics holds the Prometheus collectors of the sync process.
package metrics

import "github.com/goodnatureofminers/ledgersync/internal/evm/model"

const namespace = "ledgersync"

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func networkLabel(network model.Network) string {
	if network == "" {
		return "unknown"
	}
	return string(network)
}
