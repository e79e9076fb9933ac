package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
)

var (
	ErrEmptyPayload       = errors.New("empty telemetry payload")
	ErrUnrecognizedFormat = errors.New("no known telemetry tags in payload")
)

// Идентификаторы тегов MTConnect-агента
const (
	tagAvailability = "avail"
	tagExecution    = "exec"
	tagMode         = "mode"
	tagProgram      = "pgm"
	tagComment      = "pcmt"
	tagTool         = "tid"
	tagSpindle      = "cs"
	tagFeed         = "pf"
	tagX            = "xp"
	tagY            = "yp"
	tagZ            = "zp"
	tagAlarm        = "alarm"
)

var knownTags = []string{
	tagAvailability, tagExecution, tagMode, tagProgram, tagComment, tagTool,
	tagSpindle, tagFeed, tagX, tagY, tagZ, tagAlarm,
}

type tagPatterns struct {
	xml  *regexp.Regexp
	flat *regexp.Regexp
}

var patterns = compilePatterns()

func compilePatterns() map[string]tagPatterns {
	out := make(map[string]tagPatterns, len(knownTags))
	for _, tag := range knownTags {
		q := regexp.QuoteMeta(tag)
		out[tag] = tagPatterns{
			xml:  regexp.MustCompile(`<[^>]*dataItemId="` + q + `"[^>]*>([^<]*)</[^>]*>`),
			flat: regexp.MustCompile(`dataItemId=` + q + `\s+value=(?:"([^"]*)"|(\S*))`),
		}
	}
	return out
}

var (
	whitespace   = regexp.MustCompile(`\s+`)
	markupChars  = regexp.MustCompile(`[&<>]`)
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	entityDecode = strings.NewReplacer(
		"&quot;", `"`,
		"&apos;", "'",
		"&#39;", "'",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
)

// Normalize разбирает сырой ответ контроллера в Telemetry.
// Отсутствующие теги дают пустые значения; ошибка возвращается только для пустого или нечитаемого ответа.
func Normalize(protocol entities.ProtocolType, raw string, at time.Time) (*models.Telemetry, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	var (
		t   *models.Telemetry
		err error
	)
	if strings.HasPrefix(payload, "{") {
		t, err = fromJSON(payload)
	} else {
		t, err = fromTags(payload)
	}
	if err != nil {
		return nil, err
	}

	if protocol == entities.ProtocolFanucAdapter {
		t.Execution = FanucExecution(t.Execution)
	}
	if strings.EqualFold(t.Execution, "UNAVAILABLE") {
		t.Execution = ""
	}
	t.CapturedAt = at
	return t, nil
}

func fromTags(payload string) (*models.Telemetry, error) {
	values := make(map[string]string, len(knownTags))
	found := false
	for _, tag := range knownTags {
		if v, ok := extract(payload, tag); ok {
			values[tag] = v
			found = true
		}
	}
	if !found {
		return nil, ErrUnrecognizedFormat
	}

	return &models.Telemetry{
		Availability: strings.TrimSpace(values[tagAvailability]),
		Execution:    strings.TrimSpace(values[tagExecution]),
		Controller:   strings.TrimSpace(values[tagMode]),
		Program:      ProgramName(values[tagProgram], values[tagComment]),
		Tool:         strings.TrimSpace(values[tagTool]),
		Metrics: models.Metrics{
			SpindleSpeed: parseNumber(values[tagSpindle]),
			FeedRate:     parseNumber(values[tagFeed]),
			AxisPositions: models.AxisPositions{
				X: parseNumber(values[tagX]),
				Y: parseNumber(values[tagY]),
				Z: parseNumber(values[tagZ]),
			},
		},
		Alarm: strings.TrimSpace(values[tagAlarm]),
	}, nil
}

// extract ищет первое вхождение тега: сначала XML-элемент, затем пару dataItemId=X value=Y
func extract(payload, tag string) (string, bool) {
	p := patterns[tag]
	if m := p.xml.FindStringSubmatch(payload); m != nil {
		return m[1], true
	}
	if m := p.flat.FindStringSubmatch(payload); m != nil {
		if m[1] != "" {
			return m[1], true
		}
		return m[2], true
	}
	return "", false
}

// fanucPayload - JSON, который отдает HTTP-адаптер FANUC
type fanucPayload struct {
	Availability string      `json:"availability"`
	Execution    interface{} `json:"execution"`
	Controller   string      `json:"controller"`
	Program      string      `json:"program"`
	Comment      string      `json:"comment"`
	Tool         interface{} `json:"tool"`
	SpindleSpeed interface{} `json:"spindleSpeed"`
	FeedRate     interface{} `json:"feedRate"`
	AxisX        interface{} `json:"axisX"`
	AxisY        interface{} `json:"axisY"`
	AxisZ        interface{} `json:"axisZ"`
	Alarm        string      `json:"alarm"`
}

func fromJSON(payload string) (*models.Telemetry, error) {
	var p fanucPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("malformed adapter payload: %w", err)
	}

	return &models.Telemetry{
		Availability: strings.TrimSpace(p.Availability),
		Execution:    strings.TrimSpace(asString(p.Execution)),
		Controller:   strings.TrimSpace(p.Controller),
		Program:      ProgramName(p.Program, p.Comment),
		Tool:         strings.TrimSpace(asString(p.Tool)),
		Metrics: models.Metrics{
			SpindleSpeed: parseNumber(asString(p.SpindleSpeed)),
			FeedRate:     parseNumber(asString(p.FeedRate)),
			AxisPositions: models.AxisPositions{
				X: parseNumber(asString(p.AxisX)),
				Y: parseNumber(asString(p.AxisY)),
				Z: parseNumber(asString(p.AxisZ)),
			},
		},
		Alarm: strings.TrimSpace(p.Alarm),
	}, nil
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// parseNumber возвращает 0 для всего, что не является конечным числом
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ProgramName склеивает имя программы и очищенный комментарий: "O1234 - FACE MILL"
func ProgramName(name, comment string) string {
	name = strings.TrimSpace(name)
	comment = SanitizeComment(comment)
	switch {
	case comment == "":
		return name
	case name == "":
		return comment
	default:
		return name + " - " + comment
	}
}

// SanitizeComment декодирует сущности, убирает разметку и управляющие символы, схлопывает пробелы
func SanitizeComment(comment string) string {
	comment = entityDecode.Replace(comment)
	comment = markupChars.ReplaceAllString(comment, "")
	comment = controlChars.ReplaceAllString(comment, " ")
	comment = whitespace.ReplaceAllString(comment, " ")
	return strings.TrimSpace(comment)
}
