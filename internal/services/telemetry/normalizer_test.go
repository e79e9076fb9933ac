package telemetry

import (
	"testing"
	"time"

	"github.com/iwtcode/machineMonitor/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capturedAt = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

const mtconnectPayload = `<?xml version="1.0" encoding="UTF-8"?>
<MTConnectStreams>
  <Events>
    <Availability dataItemId="avail" timestamp="2024-05-06T10:00:00Z">AVAILABLE</Availability>
    <Execution dataItemId="exec" timestamp="2024-05-06T10:00:00Z">ACTIVE</Execution>
    <ControllerMode dataItemId="mode">AUTOMATIC</ControllerMode>
    <Program dataItemId="pgm">O1234</Program>
    <ProgramComment dataItemId="pcmt">  &quot;FACE&quot;   MILL &amp; drill  </ProgramComment>
    <ToolNumber dataItemId="tid">12</ToolNumber>
  </Events>
  <Samples>
    <SpindleSpeed dataItemId="cs">1200.5</SpindleSpeed>
    <PathFeedrate dataItemId="pf">UNAVAILABLE</PathFeedrate>
    <Position dataItemId="xp">10.25</Position>
    <Position dataItemId="yp">-3</Position>
  </Samples>
</MTConnectStreams>`

func TestNormalizeMTConnectXML(t *testing.T) {
	tel, err := Normalize(entities.ProtocolMTConnect, mtconnectPayload, capturedAt)
	require.NoError(t, err)

	assert.Equal(t, "AVAILABLE", tel.Availability)
	assert.Equal(t, "ACTIVE", tel.Execution)
	assert.Equal(t, "AUTOMATIC", tel.Controller)
	assert.Equal(t, `O1234 - "FACE" MILL drill`, tel.Program)
	assert.Equal(t, "12", tel.Tool)
	assert.InDelta(t, 1200.5, tel.Metrics.SpindleSpeed, 1e-9)
	assert.Zero(t, tel.Metrics.FeedRate, "unparseable numbers become zero")
	assert.InDelta(t, 10.25, tel.Metrics.AxisPositions.X, 1e-9)
	assert.InDelta(t, -3.0, tel.Metrics.AxisPositions.Y, 1e-9)
	assert.Zero(t, tel.Metrics.AxisPositions.Z, "missing tags default to zero")
	assert.Empty(t, tel.Alarm)
	assert.Equal(t, capturedAt, tel.CapturedAt)
}

func TestNormalizeFlatPairs(t *testing.T) {
	raw := `dataItemId=exec value=STOPPED dataItemId=pgm value=O0001 dataItemId=pcmt value="ROUGH  PASS" dataItemId=xp value=1.5`
	tel, err := Normalize(entities.ProtocolMTConnect, raw, capturedAt)
	require.NoError(t, err)

	assert.Equal(t, "STOPPED", tel.Execution)
	assert.Equal(t, "O0001 - ROUGH PASS", tel.Program)
	assert.InDelta(t, 1.5, tel.Metrics.AxisPositions.X, 1e-9)
	assert.Empty(t, tel.Tool)
}

func TestNormalizeFirstMatchWins(t *testing.T) {
	raw := `<a dataItemId="exec">ACTIVE</a><b dataItemId="exec">STOPPED</b>`
	tel, err := Normalize(entities.ProtocolMTConnect, raw, capturedAt)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", tel.Execution)
}

func TestNormalizeFanucJSON(t *testing.T) {
	raw := `{"execution":"STRT","controller":"MEM","program":"O100","tool":7,"spindleSpeed":"800","feedRate":150,"axisX":1,"axisY":2,"axisZ":"bad","alarm":""}`
	tel, err := Normalize(entities.ProtocolFanucAdapter, raw, capturedAt)
	require.NoError(t, err)

	assert.Equal(t, ExecutionActive, tel.Execution)
	assert.Equal(t, "MEM", tel.Controller)
	assert.Equal(t, "O100", tel.Program)
	assert.Equal(t, "7", tel.Tool)
	assert.InDelta(t, 800.0, tel.Metrics.SpindleSpeed, 1e-9)
	assert.InDelta(t, 150.0, tel.Metrics.FeedRate, 1e-9)
	assert.Zero(t, tel.Metrics.AxisPositions.Z)
}

func TestNormalizeUnavailableExecutionIsEmpty(t *testing.T) {
	tel, err := Normalize(entities.ProtocolMTConnect, `<e dataItemId="exec">UNAVAILABLE</e>`, capturedAt)
	require.NoError(t, err)
	assert.Empty(t, tel.Execution)
}

func TestNormalizeRejectsEmptyAndGarbage(t *testing.T) {
	_, err := Normalize(entities.ProtocolMTConnect, "   \n", capturedAt)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Normalize(entities.ProtocolMTConnect, "<html>502 Bad Gateway</html>", capturedAt)
	assert.ErrorIs(t, err, ErrUnrecognizedFormat)

	_, err = Normalize(entities.ProtocolFanucAdapter, "{not json", capturedAt)
	assert.Error(t, err)
}

func TestFanucExecution(t *testing.T) {
	tests := map[string]string{
		"3":     ExecutionActive,
		"STRT":  ExecutionActive,
		"2":     ExecutionFeedHold,
		"1":     ExecutionStopped,
		"****":  ExecutionStopped,
		"Reset": ExecutionStopped,
		"4":     ExecutionInterrupted,
		"alarm": ExecutionAlarm,
		" EDIT": "EDIT",
	}
	for in, want := range tests {
		assert.Equal(t, want, FanucExecution(in), in)
	}
}

func TestSanitizeComment(t *testing.T) {
	assert.Equal(t, `A "B" C`, SanitizeComment("  A\t&quot;B&quot;\n\n C\x01 "))
	assert.Equal(t, "xbry", SanitizeComment("x<br>y"))
	assert.Equal(t, "O1", ProgramName(" O1 ", "   "))
	assert.Equal(t, "ONLY", ProgramName("", "ONLY"))
}
