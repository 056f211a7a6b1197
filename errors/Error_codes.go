package errors

import "strconv"

// ERR is the application error code carried by every *Error.
type ERR int32

const (
	ERR_UNKNOWN                ERR = 0
	ERR_INVALID_ARGUMENT       ERR = 1
	ERR_NOT_FOUND              ERR = 3
	ERR_PROCESSING             ERR = 4
	ERR_CONFIGURATION          ERR = 5
	ERR_CONTEXT                ERR = 6
	ERR_ERROR                  ERR = 9
	ERR_UNSUPPORTED            ERR = 10
	ERR_TX_NOT_FOUND           ERR = 30
	ERR_TX_INVALID             ERR = 31
	ERR_TX_ALREADY_EXISTS      ERR = 33
	ERR_TX_MALFORMED           ERR = 34
	ERR_TX_MISSING_INPUT       ERR = 35
	ERR_TX_SCRIPT_VERIFICATION ERR = 36
	ERR_SERVICE_ERROR          ERR = 52
	ERR_STORAGE_UNAVAILABLE    ERR = 60
	ERR_STORAGE_ERROR          ERR = 62
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	3:  "NOT_FOUND",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	6:  "CONTEXT",
	9:  "ERROR",
	10: "UNSUPPORTED",
	30: "TX_NOT_FOUND",
	31: "TX_INVALID",
	33: "TX_ALREADY_EXISTS",
	34: "TX_MALFORMED",
	35: "TX_MISSING_INPUT",
	36: "TX_SCRIPT_VERIFICATION",
	52: "SERVICE_ERROR",
	60: "STORAGE_UNAVAILABLE",
	62: "STORAGE_ERROR",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}
