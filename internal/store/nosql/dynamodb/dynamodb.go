package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/zeebo/errs"

	"github.com/Philanthropists/opresult/pkg/result"
)

const DefaultTable = "operation-outcomes"

type dynamoClient interface {
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type Config struct {
	Region string `json:"region"`
	Table  string `json:"table"`
}

// Record is the last known outcome of an operation, keyed by Operation.
type Record struct {
	Operation  string    `json:"operation"         dynamodbav:"Operation"`
	Success    bool      `json:"success"           dynamodbav:"Success"`
	Message    string    `json:"message,omitempty" dynamodbav:"Message,omitempty"`
	RecordedAt time.Time `json:"recorded_at"       dynamodbav:"RecordedAt"`
}

func NewRecord(operation string, r result.Result, at time.Time) Record {
	return Record{
		Operation:  operation,
		Success:    r.Success,
		Message:    r.Message,
		RecordedAt: at,
	}
}

func (r Record) Outcome() result.Result {
	return result.Result{
		Success: r.Success,
		Message: r.Message,
	}
}

type Client struct {
	DynamoDBClient dynamoClient
	Table          string
}

func NewClient(ctx context.Context, cfg Config) (Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return Client{}, errs.Wrap(err)
	}

	return Client{
		DynamoDBClient: dynamodb.NewFromConfig(awsCfg),
		Table:          cfg.Table,
	}, nil
}

func (c Client) dynamodb() (dynamoClient, error) {
	if c.DynamoDBClient == nil {
		return nil, errs.New("there is no DynamoDBClient defined")
	}

	return c.DynamoDBClient, nil
}

func (c Client) table() *string {
	if c.Table == "" {
		return aws.String(DefaultTable)
	}

	return aws.String(c.Table)
}

func (c Client) Put(ctx context.Context, rec Record) error {
	dynamo, err := c.dynamodb()
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return errs.Wrap(err)
	}

	_, err = dynamo.PutItem(ctx, &dynamodb.PutItemInput{
		Item:      item,
		TableName: c.table(),
	})

	return errs.Wrap(err)
}

// Get reports false when there is no record for operation.
func (c Client) Get(ctx context.Context, operation string) (Record, bool, error) {
	dynamo, err := c.dynamodb()
	if err != nil {
		return Record{}, false, err
	}

	key, err := attributevalue.MarshalMap(map[string]string{
		"Operation": operation,
	})
	if err != nil {
		return Record{}, false, errs.Wrap(err)
	}

	res, err := dynamo.GetItem(ctx, &dynamodb.GetItemInput{
		Key:       key,
		TableName: c.table(),
	})
	if err != nil {
		return Record{}, false, errs.Wrap(err)
	}

	if len(res.Item) == 0 {
		return Record{}, false, nil
	}

	var rec Record
	if err := attributevalue.UnmarshalMap(res.Item, &rec); err != nil {
		return Record{}, false, errs.Wrap(err)
	}

	return rec, true, nil
}

func (c Client) Scan(ctx context.Context) ([]Record, error) {
	dynamo, err := c.dynamodb()
	if err != nil {
		return nil, err
	}

	scanIn := &dynamodb.ScanInput{
		TableName: c.table(),
	}

	items := []map[string]types.AttributeValue{}
	for {
		out, err := dynamo.Scan(ctx, scanIn)
		if err != nil {
			return nil, errs.Wrap(err)
		}

		items = append(items, out.Items...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}

		scanIn.ExclusiveStartKey = out.LastEvaluatedKey
	}

	records := make([]Record, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, errs.Wrap(err)
	}

	return records, nil
}
