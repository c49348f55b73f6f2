package logdata

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/simbashlog/notify-helper/internal/utils/fileutil"
	"github.com/simbashlog/notify-helper/pkg/severity"
	"github.com/valyala/fastjson"
)

// JSON keys recognized in a log object. Keys are case-sensitive.
const (
	keyTimestamp   = "timestamp"
	keyHost        = "host"
	keyProcessName = "process_name"
	keyPID         = "pid"
	keyLevel       = "level"
	keyMessage     = "message"

	// grouped simbashlog document
	keyPIDs       = "pids"
	keyLogs       = "logs"
	keyScriptInfo = "script_info"
)

var parserPool fastjson.ParserPool

// JSONParser reads structured logs. Accepted shapes:
//   - an array of log objects
//   - one log object per line (NDJSON)
//   - the simbashlog document {"pids": [...], "<pid>": {"logs": [...]}}
type JSONParser struct{}

// NewJSONParser creates a JSONParser.
func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// Parse reads the whole file and maps each object to a record.
func (p *JSONParser) Parse(path string) (*Result, error) {
	rc, err := fileutil.OpenLogSource(path)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	res := &Result{}
	if len(bytes.TrimSpace(data)) == 0 {
		return finish(path, res)
	}

	jp := parserPool.Get()
	defer parserPool.Put(jp)

	v, err := jp.ParseBytes(data)
	if err != nil {
		// Not a single document: read as NDJSON.
		parseLines(path, data, res)
		return finish(path, res)
	}

	switch v.Type() {
	case fastjson.TypeArray:
		arr, _ := v.Array()
		for i, item := range arr {
			addObject(res, path, i+1, item, nil)
		}
	case fastjson.TypeObject:
		if isGrouped(v) {
			parseGrouped(path, v, res)
		} else {
			addObject(res, path, 1, v, nil)
		}
	default:
		skip(res, path, 1, "unexpected JSON %s at top level", v.Type())
	}
	return finish(path, res)
}

func parseLines(path string, data []byte, res *Result) {
	lp := parserPool.Get()
	defer parserPool.Put(lp)

	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		v, err := lp.ParseBytes(line)
		if err != nil {
			skip(res, path, i+1, "invalid JSON: %v", err)
			continue
		}
		addObject(res, path, i+1, v, nil)
	}
}

// parseGrouped reads the orchestrator's per-pid document. The pid of each group is
// injected into its logs.
func parseGrouped(path string, doc *fastjson.Value, res *Result) {
	pids, err := doc.Get(keyPIDs).Array()
	if err != nil {
		skip(res, path, 1, "%q is not an array", keyPIDs)
		return
	}
	entry := 0
	for _, pv := range pids {
		key, pid, err := groupKey(pv)
		if err != nil {
			entry++
			skip(res, path, entry, "%v", err)
			continue
		}
		group := doc.Get(key, keyLogs)
		if group == nil || group.Type() != fastjson.TypeArray {
			entry++
			skip(res, path, entry, "pid %d has no %q array", pid, keyLogs)
			continue
		}
		logs, _ := group.Array()
		for _, item := range logs {
			entry++
			addObject(res, path, entry, item, &pid)
		}
	}
}

// isGrouped reports whether an object is the per-pid document rather than a
// single log object that happens to carry a "pids" key.
func isGrouped(v *fastjson.Value) bool {
	return v.Exists(keyPIDs) && !v.Exists(keyMessage)
}

func groupKey(v *fastjson.Value) (string, int, error) {
	var key string
	switch v.Type() {
	case fastjson.TypeNumber:
		key = v.String()
	case fastjson.TypeString:
		key = string(v.GetStringBytes())
	default:
		return "", 0, fmt.Errorf("invalid pid %s", v)
	}
	pid, err := strconv.Atoi(key)
	if err != nil || pid < 0 {
		return "", 0, fmt.Errorf("invalid pid %q", key)
	}
	return key, pid, nil
}

func addObject(res *Result, path string, entry int, v *fastjson.Value, groupPID *int) {
	rec, err := mapObject(v, groupPID)
	if err != nil {
		skip(res, path, entry, "%v", err)
		return
	}
	res.Records = append(res.Records, rec)
}

// mapObject maps the recognized keys of a log object; unknown keys are ignored.
func mapObject(v *fastjson.Value, groupPID *int) (Record, error) {
	if v.Type() != fastjson.TypeObject {
		return Record{}, fmt.Errorf("entry is a JSON %s, not an object", v.Type())
	}

	level, err := jsonLevel(v.Get(keyLevel))
	if err != nil {
		return Record{}, err
	}
	msg := v.Get(keyMessage)
	if msg == nil || msg.Type() == fastjson.TypeNull {
		return Record{}, fmt.Errorf("missing %q", keyMessage)
	}
	if msg.Type() != fastjson.TypeString {
		return Record{}, fmt.Errorf("%q is not a string", keyMessage)
	}

	rec := Record{
		Level:       level,
		Message:     string(msg.GetStringBytes()),
		Host:        jsonString(v.Get(keyHost)),
		ProcessName: jsonString(v.Get(keyProcessName)),
	}
	if groupPID != nil {
		pid := *groupPID
		rec.PID = &pid
		if rec.ProcessName == nil {
			rec.ProcessName = jsonString(v.Get(keyScriptInfo))
		}
	} else {
		pid, err := jsonPID(v.Get(keyPID))
		if err != nil {
			return Record{}, err
		}
		rec.PID = pid
	}
	jsonTime(v.Get(keyTimestamp), &rec)
	return rec, nil
}

func jsonLevel(v *fastjson.Value) (severity.Level, error) {
	if v == nil || v.Type() == fastjson.TypeNull {
		return 0, fmt.Errorf("missing %q", keyLevel)
	}
	var token string
	switch v.Type() {
	case fastjson.TypeNumber:
		token = v.String()
	case fastjson.TypeString:
		token = string(v.GetStringBytes())
	default:
		return 0, fmt.Errorf("invalid %q %s", keyLevel, v)
	}
	level, ok := severity.ParseToken(token)
	if !ok {
		return 0, fmt.Errorf("unknown severity %q", token)
	}
	return level, nil
}

func jsonString(v *fastjson.Value) *string {
	if v == nil || v.Type() != fastjson.TypeString {
		return nil
	}
	return optional(string(v.GetStringBytes()))
}

func jsonPID(v *fastjson.Value) (*int, error) {
	if v == nil || v.Type() == fastjson.TypeNull {
		return nil, nil
	}
	switch v.Type() {
	case fastjson.TypeNumber:
		n, err := v.Int()
		if err != nil {
			// integral floats such as 42.0
			f, ferr := v.Float64()
			if ferr != nil || f != math.Trunc(f) || f > math.MaxInt32 {
				return nil, fmt.Errorf("invalid pid %s", v)
			}
			n = int(f)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid pid %s", v)
		}
		return &n, nil
	case fastjson.TypeString:
		return parsePID(string(v.GetStringBytes()))
	default:
		return nil, fmt.Errorf("invalid pid %s", v)
	}
}

// jsonTime accepts an ISO-8601 string or unix seconds (fractions allowed).
func jsonTime(v *fastjson.Value, rec *Record) {
	if v == nil {
		return
	}
	switch v.Type() {
	case fastjson.TypeString:
		if ts := optional(string(v.GetStringBytes())); ts != nil {
			rec.TimeText = *ts
			rec.Time = parseTime(*ts)
		}
	case fastjson.TypeNumber:
		f, err := v.Float64()
		if err != nil {
			return
		}
		sec, frac := math.Modf(f)
		t := time.Unix(int64(sec), int64(math.Round(frac*1e9)))
		rec.Time = &t
		rec.TimeText = strings.TrimSpace(v.String())
	}
}
