package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/engagement-go/internal/application"
	"github.com/linskybing/engagement-go/internal/client/mock"
	"github.com/linskybing/engagement-go/internal/domain/message"
	"github.com/linskybing/engagement-go/internal/repository"
	"github.com/linskybing/engagement-go/internal/testutils"
	"github.com/linskybing/engagement-go/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMessaging(t *testing.T) (*application.MessageService, *mock.MockMatchChecker, *mock.MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	checker := mock.NewMockMatchChecker(ctrl)
	notifier := mock.NewMockNotifier(ctrl)
	repos := repository.NewRepositories(testutils.NewTestDB(t))
	return application.NewMessageService(repos, checker, notifier, zap.NewNop()), checker, notifier
}

func TestSend_Matched(t *testing.T) {
	svc, checker, notifier := setupMessaging(t)
	ctx := context.Background()
	campaignID := uint(3)

	agreementID := uint(5)
	checker.EXPECT().IsMatched(gomock.Any(), uint(1), uint(11), &campaignID, &agreementID).Return(true, nil)
	notifier.EXPECT().Notify(uint(11), gomock.Any()).DoAndReturn(func(_ uint, p message.Push) int {
		assert.Equal(t, "hello", p.Content)
		assert.Equal(t, uint(1), p.SenderID)
		return 1
	})

	msg, err := svc.Send(ctx, 1, message.SendMessageDTO{ReceiverID: 11, AgreementID: 5, CampaignID: &campaignID, Content: "hello"})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	history, err := svc.History(ctx, 11, 1, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Content)
}

func TestSend_FailsClosed(t *testing.T) {
	tests := []struct {
		name    string
		matched bool
		err     error
	}{
		{"not matched", false, nil},
		{"authority unreachable", false, apperr.ErrUpstreamUnavailable},
		{"error with stale true", true, errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, checker, _ := setupMessaging(t)
			ctx := context.Background()
			checker.EXPECT().IsMatched(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.matched, tt.err)

			_, err := svc.Send(ctx, 1, message.SendMessageDTO{ReceiverID: 11, AgreementID: 5, Content: "hi"})
			assert.True(t, errors.Is(err, apperr.ErrForbidden), "got %v", err)

			history, err := svc.History(ctx, 1, 11, 5)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestSend_Validation(t *testing.T) {
	svc, _, _ := setupMessaging(t)

	_, err := svc.Send(context.Background(), 1, message.SendMessageDTO{ReceiverID: 1, AgreementID: 5, Content: "me"})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))

	_, err = svc.Send(context.Background(), 1, message.SendMessageDTO{ReceiverID: 2, AgreementID: 5, Content: "   "})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}
