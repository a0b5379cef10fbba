package services

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-service/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSOrderPublisher publishes order lifecycle events to an SNS topic for
// downstream consumers (notifications, analytics).
type SNSOrderPublisher struct {
	client   *sns.Client
	topicARN string
}

func NewSNSOrderPublisher(ctx context.Context, topicARN string) (*SNSOrderPublisher, error) {
	if topicARN == "" {
		return nil, fmt.Errorf("empty order events topic ARN")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SNSOrderPublisher{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}, nil
}

func (p *SNSOrderPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	payload := map[string]interface{}{
		"event_type":   "order_created",
		"order_id":     order.ID.Hex(),
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"email":        order.Email,
		"currency":     order.Currency,
		"total_price":  order.TotalPrice,
		"status":       order.Status,
		"order_date":   order.OrderDate,
	}

	msgBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(msgBytes)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String("order_created"),
			},
		},
	})
	return err
}
