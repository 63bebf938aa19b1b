package notif

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SqsEmitter publishes notifications to an SQS queue consumed by the
// mailer / in-app notification worker.
type SqsEmitter struct {
	sqsClient *sqs.Client
	queueUrl  string
}

func NewSqsEmitter(sqsClient *sqs.Client, queueUrl string) *SqsEmitter {
	return &SqsEmitter{
		sqsClient: sqsClient,
		queueUrl:  queueUrl,
	}
}

func (e *SqsEmitter) Emit(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	_, err = e.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(e.queueUrl),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("send notification to sqs: %w", err)
	}
	return nil
}
