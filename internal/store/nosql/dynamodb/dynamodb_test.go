package dynamodb

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philanthropists/opresult/pkg/result"
)

// fakeDynamo keeps items in memory and pages Scan one item at a time.
type fakeDynamo struct {
	items  map[string]map[string]types.AttributeValue
	tables []string
	err    error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(t map[string]types.AttributeValue) string {
	if s, ok := t["Operation"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	if f.err != nil {
		return nil, f.err
	}
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.tables = append(f.tables, aws.ToString(in.TableName))
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		last := keyOf(in.ExclusiveStartKey)
		start = sort.SearchStrings(keys, last) + 1
	}

	out := &dynamodb.ScanOutput{}
	if start < len(keys) {
		item := f.items[keys[start]]
		out.Items = []map[string]types.AttributeValue{item}
		if start+1 < len(keys) {
			out.LastEvaluatedKey = map[string]types.AttributeValue{
				"Operation": &types.AttributeValueMemberS{Value: keys[start]},
			}
		}
	}

	return out, nil
}

func Test_PutThenGet(t *testing.T) {
	fake := newFakeDynamo()
	c := Client{DynamoDBClient: fake, Table: "outcomes"}
	at := time.Date(2022, 9, 20, 19, 2, 0, 0, time.UTC)

	err := c.Put(context.Background(), NewRecord("transfer", result.Fail("invalid amount"), at))
	require.NoError(t, err)

	rec, found, err := c.Get(context.Background(), "transfer")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "transfer", rec.Operation)
	assert.Equal(t, result.Fail("invalid amount"), rec.Outcome())
	assert.True(t, at.Equal(rec.RecordedAt))
	assert.Equal(t, []string{"outcomes", "outcomes"}, fake.tables)
}

func Test_GetMissing(t *testing.T) {
	c := Client{DynamoDBClient: newFakeDynamo()}

	_, found, err := c.Get(context.Background(), "nothing")

	require.NoError(t, err)
	assert.False(t, found)
}

func Test_DefaultTable(t *testing.T) {
	fake := newFakeDynamo()
	c := Client{DynamoDBClient: fake}

	require.NoError(t, c.Put(context.Background(), NewRecord("op", result.Success(), time.Now())))

	assert.Equal(t, []string{DefaultTable}, fake.tables)
}

func Test_ScanFollowsPages(t *testing.T) {
	c := Client{DynamoDBClient: newFakeDynamo()}
	ctx := context.Background()

	for _, op := range []string{"a", "b", "c"} {
		require.NoError(t, c.Put(ctx, NewRecord(op, result.Success(), time.Now())))
	}

	recs, err := c.Scan(ctx)
	require.NoError(t, err)

	ops := make([]string, 0, len(recs))
	for _, r := range recs {
		ops = append(ops, r.Operation)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ops)
}

func Test_ErrorsAreReturned(t *testing.T) {
	fake := newFakeDynamo()
	fake.err = errors.New("throttled")
	c := Client{DynamoDBClient: fake}
	ctx := context.Background()

	assert.Error(t, c.Put(ctx, NewRecord("op", result.Success(), time.Now())))

	_, _, err := c.Get(ctx, "op")
	assert.Error(t, err)

	_, err = c.Scan(ctx)
	assert.Error(t, err)
}

func Test_MissingClient(t *testing.T) {
	var c Client

	assert.Error(t, c.Put(context.Background(), Record{}))
}
