// Package command names the cluster commands this client understands. The
// identifier is the primary token, including the subcommand where the server
// dispatches on it ("CONFIG GET" vs "CONFIG SET").
package command

const (
	Ping          = "PING"
	Echo          = "ECHO"
	Get           = "GET"
	Set           = "SET"
	Info          = "INFO"
	ClientInfo    = "CLIENT INFO"
	ClusterNodes  = "CLUSTER NODES"
	ConfigGet     = "CONFIG GET"
	ConfigSet     = "CONFIG SET"
	DBSize        = "DBSIZE"
	FlushAll      = "FLUSHALL"
	FlushDB       = "FLUSHDB"
	ScriptLoad    = "SCRIPT LOAD"
	ScriptExists  = "SCRIPT EXISTS"
	ScriptFlush   = "SCRIPT FLUSH"
	FCall         = "FCALL"
	FCallReadOnly = "FCALL_RO"
	FunctionList  = "FUNCTION LIST"
	FunctionStats = "FUNCTION STATS"
	FunctionFlush = "FUNCTION FLUSH"
)
