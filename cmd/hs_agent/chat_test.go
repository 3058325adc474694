package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hs-advisor/internal/dispatch"
	"github.com/jonathan/hs-advisor/internal/llm"
	"github.com/jonathan/hs-advisor/internal/llm/mock"
	"github.com/jonathan/hs-advisor/internal/observability"
	"github.com/jonathan/hs-advisor/internal/types"
)

func TestConversation(t *testing.T) {
	var c conversation
	assert.Equal(t, "", c.String())

	c.add("새우 분류?", "0306호입니다.")
	c.add("냉동이면?", "0306.17입니다.")
	assert.Equal(t, "사용자: 새우 분류?\n답변: 0306호입니다.\n사용자: 냉동이면?\n답변: 0306.17입니다.", c.String())

	c.reset()
	assert.Equal(t, "", c.String())
}

func newTestSession(t *testing.T, client *mock.Client) (*chatSession, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	a := newTestApp(t)
	var out, errOut bytes.Buffer
	d := dispatch.New(client, a.retriever, a.explainer,
		dispatch.WithClassifier(dispatch.StaticClassifier(types.IntentClassification)),
		dispatch.WithLogger(discardLogger()))
	return &chatSession{
		dispatcher: d,
		out:        observability.NewMarkdownWriter(&out),
		errOut:     &errOut,
	}, &out, &errOut
}

func TestChatSession_KeepsHistory(t *testing.T) {
	client := mock.NewClient("0306.17호로 분류됩니다.")
	session, out, errOut := newTestSession(t, client)
	ctx := context.Background()

	assert.True(t, session.handle(ctx, "냉동 새우 분류"))
	assert.True(t, session.handle(ctx, "  그럼 세율은?  "))

	calls := client.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, llm.TierStandard, calls[0].Tier)
	assert.True(t, strings.HasPrefix(calls[0].Prompt, "\n\n관련 데이터:\nSource: HS분류사례_part1"), calls[0].Prompt)
	assert.True(t, strings.HasPrefix(calls[1].Prompt, "사용자: 냉동 새우 분류\n답변: 0306.17호로 분류됩니다.\n\n관련 데이터:"), calls[1].Prompt)
	assert.Contains(t, calls[1].Prompt, "사용자: 그럼 세율은?\n")

	assert.Equal(t, "0306.17호로 분류됩니다.\n0306.17호로 분류됩니다.\n", out.String())
	assert.Contains(t, errOut.String(), "[hs_classification]")
}

func TestChatSession_Commands(t *testing.T) {
	client := mock.NewClient("답변")
	session, _, errOut := newTestSession(t, client)
	ctx := context.Background()

	require.True(t, session.handle(ctx, "휴대폰"))
	assert.NotEmpty(t, session.conv.String())

	assert.True(t, session.handle(ctx, "/reset"))
	assert.Empty(t, session.conv.String())
	assert.Contains(t, errOut.String(), "[conversation cleared]")

	assert.True(t, session.handle(ctx, "/help"))
	assert.Contains(t, errOut.String(), "unknown command /help")

	assert.True(t, session.handle(ctx, "   "))
	assert.Len(t, client.Calls(), 1)

	assert.False(t, session.handle(ctx, "/exit"))
	assert.False(t, session.handle(ctx, "/quit"))
}

func TestChatSession_CancelledContext(t *testing.T) {
	client := mock.NewClient("답변")
	session, out, errOut := newTestSession(t, client)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, session.handle(ctx, "휴대폰"))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: context canceled")
	assert.Empty(t, session.conv.String())
}
