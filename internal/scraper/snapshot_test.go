package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coursePage = `<html><body>
<div class="van-collapse">
  <div class="van-collapse-item">
    <div class="van-collapse-item__title" aria-expanded="false">
      <div class="van-cell__title">消防安全 <span class="count">3/5</span></div>
    </div>
  </div>
  <div class="van-collapse-item">
    <div class="van-collapse-item__title" aria-expanded="false">
      <div class="van-cell__title">交通安全 <span class="count">5/5</span></div>
    </div>
  </div>
</div>
<ul>
  <li class="img-texts-item passed">第一课</li>
  <li class="img-texts-item">第二课<script>var x = 1;</script></li>
</ul>
</body></html>`

func TestSnapshotElements(t *testing.T) {
	snap, err := NewSnapshotFromString(coursePage)
	require.NoError(t, err)

	items, err := snap.Elements(context.Background(), ".van-collapse-item")
	require.NoError(t, err)
	require.Len(t, items, 2)

	counts, err := items[0].Elements(".van-cell__title .count")
	require.NoError(t, err)
	require.Len(t, counts, 1)

	text, err := counts[0].Text()
	require.NoError(t, err)
	assert.Equal(t, "3/5", text)

	lessons, err := snap.Elements(context.Background(), ".img-texts-item")
	require.NoError(t, err)
	require.Len(t, lessons, 2)

	passed, err := lessons[0].HasClass("passed")
	require.NoError(t, err)
	assert.True(t, passed)

	passed, err = lessons[1].HasClass("passed")
	require.NoError(t, err)
	assert.False(t, passed)

	text, err = lessons[1].Text()
	require.NoError(t, err)
	assert.Equal(t, "第二课", text, "script bodies are not visible text")
}

func TestSnapshotInvalidSelector(t *testing.T) {
	snap, err := NewSnapshotFromString(coursePage)
	require.NoError(t, err)

	_, err = snap.Elements(context.Background(), "div[")
	assert.Error(t, err)
}

func TestSnapshotClickFlipsCollapse(t *testing.T) {
	snap, err := NewSnapshotFromString(coursePage)
	require.NoError(t, err)
	ctx := context.Background()

	toggles, err := snap.Elements(ctx, `.van-collapse-item__title[aria-expanded="false"]`)
	require.NoError(t, err)
	require.Len(t, toggles, 2)

	require.NoError(t, toggles[0].Click())

	toggles, err = snap.Elements(ctx, `.van-collapse-item__title[aria-expanded="false"]`)
	require.NoError(t, err)
	assert.Len(t, toggles, 1)

	clicks := snap.Clicks()
	require.Len(t, clicks, 1)
	assert.Equal(t, "div", clicks[0].Tag)
	assert.Equal(t, "van-collapse-item__title", clicks[0].Class)
	assert.Equal(t, "消防安全 3/5", clicks[0].Text)
}

func TestSnapshotCallFunction(t *testing.T) {
	snap, err := NewSnapshotFromString(coursePage)
	require.NoError(t, err)
	ctx := context.Background()

	found, err := snap.CallFunction(ctx, "finishWxCourse")
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	snap.DefineFunction("finishWxCourse", func() { calls++ })

	found, err = snap.CallFunction(ctx, "finishWxCourse")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, calls)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = snap.CallFunction(cancelled, "finishWxCourse")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSnapshotScriptDefines(t *testing.T) {
	tests := []struct {
		script string
		want   bool
	}{
		{"function finishWxCourse() { submit(); }", true},
		{"window.finishWxCourse = function () {};", true},
		{"var finishWxCourse = () => {};", true},
		{"finishWxCourse();", false},
		{"function finishWxCourseLater() {}", false},
	}

	for _, tt := range tests {
		snap, err := NewSnapshotFromString("<html><head><script>" + tt.script + "</script></head><body></body></html>")
		require.NoError(t, err)
		assert.Equal(t, tt.want, snap.ScriptDefines("finishWxCourse"), tt.script)
	}
}
