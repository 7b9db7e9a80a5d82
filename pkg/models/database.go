package models

// ConnectionMethod is the transport a function uses to reach a database.
type ConnectionMethod string

const (
	ConnectionHTTP      ConnectionMethod = "http"
	ConnectionWebSocket ConnectionMethod = "ws"
	ConnectionTCP       ConnectionMethod = "tcp"
)

// ConnectionMethods lists the known transports in display order.
var ConnectionMethods = []ConnectionMethod{ConnectionHTTP, ConnectionWebSocket, ConnectionTCP}

// Valid reports whether m is a known transport.
func (m ConnectionMethod) Valid() bool {
	switch m {
	case ConnectionHTTP, ConnectionWebSocket, ConnectionTCP:
		return true
	}
	return false
}

// DatabaseTarget is a benchmarked database endpoint. Connection secrets
// stored alongside it are never loaded into this type.
type DatabaseTarget struct {
	ID               int              `db:"id"                json:"id"`
	Name             string           `db:"name"              json:"name"`
	Provider         string           `db:"provider"          json:"provider"`
	RegionCode       string           `db:"region_code"       json:"region_code"`
	RegionLabel      string           `db:"region_label"      json:"region_label"`
	FunctionID       int              `db:"function_id"       json:"function_id"`
	ConnectionMethod ConnectionMethod `db:"connection_method" json:"connection_method"`
}
