package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// Fixed width so sort keys order lexically by time.
const dynamoDateLayout = "2006-01-02T15:04:05.000000000Z"

// DynamoAPI is the subset of the DynamoDB client the store uses
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoStore keeps bookings in a DynamoDB table keyed by email (partition)
// and "<date>#<id>" (sort)
type DynamoStore struct {
	client DynamoAPI
	table  string
}

type dynamoItem struct {
	Email      string `dynamodbav:"email"`
	SortKey    string `dynamodbav:"sk"`
	ID         string `dynamodbav:"id"`
	InputType  string `dynamodbav:"input_type"`
	ReportData string `dynamodbav:"reportData"`
	TicketKey  string `dynamodbav:"ticketKey,omitempty"`
	Date       string `dynamodbav:"date"`
}

// NewDynamoStore creates a store on an existing table
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (d *DynamoStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.SetDefaults()

	date := booking.Date.UTC().Format(dynamoDateLayout)
	item, err := attributevalue.MarshalMap(dynamoItem{
		Email:      booking.Email,
		SortKey:    date + "#" + booking.ID,
		ID:         booking.ID,
		InputType:  booking.InputType,
		ReportData: booking.ReportData,
		TicketKey:  booking.TicketKey,
		Date:       date,
	})
	if err != nil {
		return nil, storeErr("create booking", fmt.Errorf("failed to marshal item: %w", err))
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return nil, storeErr("create booking", fmt.Errorf("failed to put item in table '%s': %w", d.table, err))
	}
	return booking, nil
}

func (d *DynamoStore) GetBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(d.table),
		KeyConditionExpression: aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
		ScanIndexForward: aws.Bool(false),
	}

	bookings := make([]*models.Booking, 0)
	paginator := dynamodb.NewQueryPaginator(d.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeErr("get bookings by email", fmt.Errorf("failed to query table '%s': %w", d.table, err))
		}

		var items []dynamoItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, storeErr("get bookings by email", fmt.Errorf("failed to unmarshal items: %w", err))
		}
		for _, item := range items {
			bookings = append(bookings, item.toBooking())
		}
	}
	return bookings, nil
}

func (i dynamoItem) toBooking() *models.Booking {
	date, err := time.Parse(dynamoDateLayout, i.Date)
	if err != nil {
		// Fall back to the date half of the sort key.
		if ts, _, ok := strings.Cut(i.SortKey, "#"); ok {
			date, _ = time.Parse(dynamoDateLayout, ts)
		}
	}
	return &models.Booking{
		ID:         i.ID,
		InputType:  i.InputType,
		Email:      i.Email,
		ReportData: i.ReportData,
		TicketKey:  i.TicketKey,
		Date:       date,
	}
}

func (d *DynamoStore) Ping(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.table)})
	if err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (d *DynamoStore) Close(ctx context.Context) error {
	return nil
}

// EnsureDynamoTable creates the bookings table when it does not exist yet
// (local DynamoDB and first deploys).
func EnsureDynamoTable(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return storeErr("describe table", err)
	}

	log.Printf("📦 Creating DynamoDB table %s...", table)
	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("email"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return storeErr("create table", err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 2*time.Minute); err != nil {
		return storeErr("create table", err)
	}
	return nil
}
