package treejson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxflow/pkg/geom"
	"boxflow/pkg/layout"
	"boxflow/pkg/style"
)

func TestParseDimension(t *testing.T) {
	cases := []struct {
		in   any
		want geom.Dimension
	}{
		{120.0, geom.Length(120)},
		{"80", geom.Length(80)},
		{"80px", geom.Length(80)},
		{"50%", geom.Percent(0.5)},
		{"auto", geom.Auto()},
		{"min-content", geom.MinContent()},
		{"max-content", geom.MaxContent()},
		{"fit-content(200)", geom.FitContent(200)},
	}
	for _, c := range cases {
		got, err := ParseDimension(c.in)
		require.NoError(t, err, "%v", c.in)
		assert.Equal(t, c.want, got, "%v", c.in)
	}

	_, err := ParseDimension("12blorp")
	assert.Error(t, err)
}

func TestParseEdgesShorthand(t *testing.T) {
	e, err := ParseEdges("10 20 30 40")
	require.NoError(t, err)
	assert.Equal(t, geom.Length(10), e.Top)
	assert.Equal(t, geom.Length(20), e.Right)
	assert.Equal(t, geom.Length(30), e.Bottom)
	assert.Equal(t, geom.Length(40), e.Left)

	e, err = ParseEdges("5 auto")
	require.NoError(t, err)
	assert.Equal(t, geom.Length(5), e.Top)
	assert.Equal(t, geom.Auto(), e.Left)
}

func TestParseTracks(t *testing.T) {
	tracks, err := ParseTracks("100 1fr auto min-content 25%")
	require.NoError(t, err)
	require.Len(t, tracks, 5)
	assert.Equal(t, style.FixedTrack(100), tracks[0])
	assert.Equal(t, style.FrTrack(1), tracks[1])
	assert.Equal(t, style.AutoTrack(), tracks[2])
	assert.Equal(t, style.MinContentTrack(), tracks[3])
	assert.Equal(t, style.PercentTrack(0.25), tracks[4])
}

func TestParseTracksNested(t *testing.T) {
	tracks, err := ParseTracks("repeat(2, 100 minmax(50, 1fr)) fit-content(120)")
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	rep := tracks[0]
	assert.Equal(t, style.TrackRepeat, rep.Kind)
	assert.Equal(t, 2, rep.Count)
	require.Len(t, rep.Tracks, 2)
	assert.Equal(t, style.TrackMinMax, rep.Tracks[1].Kind)
	assert.Equal(t, style.FixedTrack(50), *rep.Tracks[1].Min)
	assert.Equal(t, style.FrTrack(1), *rep.Tracks[1].Max)

	assert.Equal(t, style.FitContentTrack(120), tracks[1])
}

func TestParseTracksAutoFill(t *testing.T) {
	tracks, err := ParseTracks("repeat(auto-fill, 100)")
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, style.RepeatAutoFill, tracks[0].Mode)

	_, err = ParseTracks("repeat(2 100)")
	assert.Error(t, err, "missing comma")
}

func TestParseGridLine(t *testing.T) {
	gl, err := ParseGridLine("1 / 3")
	require.NoError(t, err)
	assert.Equal(t, style.Line(1), gl.Start)
	assert.Equal(t, style.Line(3), gl.End)

	gl, err = ParseGridLine("span 2")
	require.NoError(t, err)
	assert.Equal(t, style.Span(2), gl.Start)

	gl, err = ParseGridLine("2 / span 3")
	require.NoError(t, err)
	assert.Equal(t, style.Line(2), gl.Start)
	assert.Equal(t, style.Span(3), gl.End)

	gl, err = ParseGridLine("-1")
	require.NoError(t, err)
	assert.Equal(t, style.Line(-1), gl.Start)
}

func TestDecodeStyleDefaults(t *testing.T) {
	st, err := DecodeStyle([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, style.DisplayBlock, st.Display)
	assert.Equal(t, 1.0, st.FlexShrink, "CSS initial flex-shrink")
	assert.True(t, st.Width.IsAuto())
}

func TestDecodeTreeAssignsUids(t *testing.T) {
	data := []byte(`{
		"id": "root",
		"style": {"display": "flex", "width": "300", "height": "50"},
		"children": [
			{"id": "a", "style": {"flexGrow": 1, "height": "50"}},
			{"id": "b", "style": {"flexGrow": 1, "height": "50"}}
		]
	}`)
	root, err := DecodeTree(data)
	require.NoError(t, err)
	assert.Equal(t, 0, root.Uid)
	assert.Equal(t, 1, root.Children[0].Uid)
	assert.Equal(t, 2, root.Children[1].Uid)
	assert.Equal(t, style.DisplayFlex, root.Style.Display)
}

func TestDecodeComputeRoundTrip(t *testing.T) {
	data := []byte(`{
		"id": "root",
		"style": {"display": "flex", "width": 300, "height": 50},
		"children": [
			{"id": "a", "style": {"flexGrow": 1, "height": 50}},
			{"id": "b", "style": {"flexGrow": 2, "height": 50}}
		]
	}`)
	root, err := DecodeTree(data)
	require.NoError(t, err)

	result := layout.New().Compute(root, layout.Context{
		AvailableWidth:  geom.Some(800),
		AvailableHeight: geom.Some(600),
		ViewportWidth:   800,
		ViewportHeight:  600,
	})
	require.Len(t, result.Children, 2)
	assert.Equal(t, 100.0, result.Children[0].Width)
	assert.Equal(t, 200.0, result.Children[1].Width)

	out, err := EncodeLayout(result)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "root", decoded["id"])
	assert.Equal(t, 300.0, decoded["width"])
}

func TestDecodeMeasureLeaf(t *testing.T) {
	data := []byte(`{
		"id": "root",
		"style": {"width": 200},
		"children": [
			{"id": "text", "text": "hello wide world", "measure": {"charWidth": 10, "lineHeight": 16}}
		]
	}`)
	root, err := DecodeTree(data)
	require.NoError(t, err)
	require.NotNil(t, root.Children[0].Measure)

	s := root.Children[0].Measure(geom.None(), geom.None())
	assert.Equal(t, 160.0, s.MaxWidth)
}

func TestDecodeStyleRejectsUnknownEnums(t *testing.T) {
	_, err := DecodeStyle([]byte(`{"display": "table"}`))
	assert.Error(t, err)
	_, err = DecodeStyle([]byte(`{"justifyContent": "sideways"}`))
	assert.Error(t, err)
}

func TestDecodeEdgesObjectForm(t *testing.T) {
	st, err := DecodeStyle([]byte(`{"margin": {"left": "auto", "right": "auto", "top": 5}}`))
	require.NoError(t, err)
	assert.True(t, st.Margin.Left.IsAuto())
	assert.True(t, st.Margin.Right.IsAuto())
	assert.Equal(t, geom.Length(5), st.Margin.Top)
}

func TestDecodeGridStyle(t *testing.T) {
	st, err := DecodeStyle([]byte(`{
		"display": "grid",
		"gridTemplateColumns": "1fr 2fr 1fr",
		"gridAutoFlow": "row-dense",
		"gridTemplateAreas": ["head head", "nav main"],
		"gap": 10
	}`))
	require.NoError(t, err)
	require.Len(t, st.GridTemplateColumns, 3)
	assert.Equal(t, style.GridAutoFlowRowDense, st.GridAutoFlow)
	assert.Equal(t, [][]string{{"head", "head"}, {"nav", "main"}}, st.GridTemplateAreas)
	assert.Equal(t, geom.Length(10), st.RowGap)
	assert.Equal(t, geom.Length(10), st.ColumnGap)
}
