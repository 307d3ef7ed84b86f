package emailsend

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"application-intake/internal/common/errors"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSES struct {
	mock.Mock
}

func (m *MockSES) SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendRawEmailOutput), args.Error(1)
}

func TestSESTransport_Send(t *testing.T) {
	client := new(MockSES)
	client.On("SendRawEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendRawEmailInput) bool {
		return sdkaws.ToString(in.Source) == "noreply@example.com" &&
			len(in.Destinations) == 1 && in.Destinations[0] == "admin@example.com" &&
			strings.Contains(string(in.RawMessage.Data), "MIME-Version: 1.0")
	})).Return(&ses.SendRawEmailOutput{MessageId: sdkaws.String("ses-1")}, nil)

	transport := NewSESTransport(client, nil)
	assert.Equal(t, "ses", transport.Name())
	require.NoError(t, transport.Send(context.Background(), testMessage()))
	client.AssertExpectations(t)
}

func TestSESTransport_Failure(t *testing.T) {
	client := new(MockSES)
	client.On("SendRawEmail", mock.Anything, mock.Anything).Return(nil, stderrors.New("throttled"))

	err := NewSESTransport(client, nil).Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTransportFailed))

	std, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.True(t, std.Retryable)
	assert.Equal(t, "ses", std.Metadata["provider"])
}
