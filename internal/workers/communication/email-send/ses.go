package emailsend

import (
	"context"

	"application-intake/internal/common/aws"
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESTransport hands the raw MIME message to Amazon SES.
type SESTransport struct {
	client aws.SESAPI
	logger logger.Logger
}

func NewSESTransport(client aws.SESAPI, log logger.Logger) *SESTransport {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &SESTransport{client: client, logger: log}
}

func (t *SESTransport) Name() string { return "ses" }

func (t *SESTransport) Send(ctx context.Context, msg *Message) error {
	raw, err := BuildMIME(msg)
	if err != nil {
		return errors.NewTransportFailedError(t.Name(), err)
	}

	out, err := t.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       sdkaws.String(msg.From),
		Destinations: msg.Recipients(),
		RawMessage:   &types.RawMessage{Data: raw},
	})
	if err != nil {
		return errors.NewTransportFailedError(t.Name(), err)
	}

	var messageID string
	if out != nil {
		messageID = sdkaws.ToString(out.MessageId)
	}
	t.logger.Debug("ses message accepted", map[string]interface{}{
		"messageId":     messageID,
		"bytes":         len(raw),
		"hasAttachment": msg.Attachment != nil,
	})
	return nil
}
