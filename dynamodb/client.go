package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/data-ingestion-approver/lambdas/user"
	"github.com/sirupsen/logrus"
)

const (
	// PartitionKey is the DynamoDB partition key attribute name. The table has
	// a simple primary key; there is no sort key.
	PartitionKey = user.IDAttr

	// maxBackoff is the maximum backoff duration for retry loops.
	maxBackoff = 2 * time.Second

	// batchWriteLimit is the maximum number of requests in one BatchWriteItem call.
	batchWriteLimit = 25
)

// Client is a DynamoDB-backed store for user records. Each record is one item
// keyed by the user's email address.
//
// Use [New] to create a Client, [Client.Connect] to initialize the underlying
// DynamoDB connection, and [Client.Init] to validate the table schema.
type Client struct {
	client    API
	tableName string
	awsCfg    *aws.Config
	opts      *Options
	logger    logrus.FieldLogger
}

// New creates a new Client configured with the given AWS config, table name,
// and optional options. Call [Client.Connect] on the returned client before use.
func New(awsCfg *aws.Config, tableName string, opts ...Option) *Client {
	options := newOptions()

	for _, o := range opts {
		o(options)
	}

	return &Client{
		awsCfg:    awsCfg,
		tableName: tableName,
		opts:      options,
	}
}

// Connect initializes the DynamoDB client from the AWS config provided to [New].
// It must be called before any other Client methods, and must complete before
// the Client is used concurrently.
func (c *Client) Connect() error {
	if c.tableName == "" {
		return errors.New("table name cannot be empty")
	}

	if err := c.opts.validate(); err != nil {
		return fmt.Errorf("invalid DynamoDB options: %w", err)
	}

	c.logger = c.opts.logger.
		WithField("component", "dynamodb").
		WithField("table_name", c.tableName)

	// Use injected DynamoDB API if provided (useful for testing).
	if c.opts.dynamoDBAPI != nil {
		c.client = c.opts.dynamoDBAPI
		return nil
	}

	if c.awsCfg == nil {
		return errors.New("AWS config cannot be nil")
	}

	c.client = dynamodb.NewFromConfig(*c.awsCfg, func(o *dynamodb.Options) {
		if c.opts.endpoint != "" {
			o.BaseEndpoint = aws.String(c.opts.endpoint)
		}
	})

	return nil
}

// Init validates the DynamoDB table schema. It checks that the table exists,
// has a simple primary key whose partition key is id, and is active.
//
// Pass skipSchemaValidation true to skip all checks and return immediately,
// which is useful when schema validation is managed separately.
func (c *Client) Init(ctx context.Context, skipSchemaValidation bool) error {
	if skipSchemaValidation {
		return nil
	}

	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(c.tableName),
	}

	response, err := c.client.DescribeTable(ctx, input)
	if err != nil {
		var notFoundError *dynamodbtypes.ResourceNotFoundException
		if errors.As(err, &notFoundError) {
			return fmt.Errorf("table %s does not exist", c.tableName)
		}
		return fmt.Errorf("failed to describe table %s: %w", c.tableName, err)
	}

	if response.Table == nil || len(response.Table.KeySchema) < 1 {
		return fmt.Errorf("table %s has no key schema", c.tableName)
	}

	if aws.ToString(response.Table.KeySchema[0].AttributeName) != PartitionKey {
		return fmt.Errorf("table %s has partition key %s, expected %s", c.tableName, aws.ToString(response.Table.KeySchema[0].AttributeName), PartitionKey)
	}

	if len(response.Table.KeySchema) > 1 {
		return fmt.Errorf("table %s has a composite primary key, expected a simple primary key", c.tableName)
	}

	if response.Table.TableStatus != dynamodbtypes.TableStatusActive {
		return fmt.Errorf("table %s is not active (status: %s)", c.tableName, response.Table.TableStatus)
	}

	c.logger.Debug("Table schema validated")

	return nil
}

// PutUser writes a user record with a single PutItem call. An existing item
// with the same id is replaced in full; attributes are never merged.
func (c *Client) PutUser(ctx context.Context, record user.Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: &c.tableName,
		Item:      item,
	}

	if _, err = c.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to write user record to DynamoDB table %s: %w", c.tableName, err)
	}

	c.logger.Debug("User record written")

	return nil
}

// DropAllData deletes every item from the DynamoDB table. It scans the table
// in pages and removes each page using BatchWriteItem with exponential backoff
// for unprocessed items.
//
// This method is intended for use in tests only. Do not call it in production.
func (c *Client) DropAllData(ctx context.Context) error {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(c.tableName),
		ProjectionExpression: aws.String("#pk"),
		ExpressionAttributeNames: map[string]string{
			"#pk": PartitionKey,
		},
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		output, err := c.client.Scan(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to scan DynamoDB table %s: %w", c.tableName, err)
		}

		for i := 0; i < len(output.Items); i += batchWriteLimit {
			end := min(i+batchWriteLimit, len(output.Items))

			if err := c.deleteBatch(ctx, output.Items[i:end]); err != nil {
				return err
			}
		}

		if output.LastEvaluatedKey == nil {
			break
		}

		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return nil
}

func (c *Client) deleteBatch(ctx context.Context, items []map[string]dynamodbtypes.AttributeValue) error {
	requestItems := make([]dynamodbtypes.WriteRequest, 0, len(items))

	for _, item := range items {
		requestItems = append(requestItems, dynamodbtypes.WriteRequest{
			DeleteRequest: &dynamodbtypes.DeleteRequest{
				Key: map[string]dynamodbtypes.AttributeValue{
					PartitionKey: item[PartitionKey],
				},
			},
		})
	}

	batchInput := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]dynamodbtypes.WriteRequest{
			c.tableName: requestItems,
		},
	}

	const maxRetries = 5
	backoff := 50 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		batchResult, err := c.client.BatchWriteItem(ctx, batchInput)
		if err != nil {
			return fmt.Errorf("failed to batch delete items from DynamoDB table %s: %w", c.tableName, err)
		}

		if len(batchResult.UnprocessedItems) == 0 {
			return nil
		}

		if attempt == maxRetries {
			return fmt.Errorf("%d unprocessed items after %d retries in DropAllData",
				len(batchResult.UnprocessedItems[c.tableName]), maxRetries)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
		batchInput.RequestItems = batchResult.UnprocessedItems
	}

	return nil
}
