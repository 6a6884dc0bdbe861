package db

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/solfege/model"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("analysis not found")

// Record is the summary of one analysis kept in the history table.
type Record struct {
	ID         string      `dynamodbav:"PK" json:"id"`
	Source     string      `dynamodbav:"Source" json:"source"`
	Paragraphs int         `dynamodbav:"Paragraphs" json:"paragraphs"`
	TotalNotes int         `dynamodbav:"TotalNotes" json:"total_notes"`
	Tally      model.Tally `dynamodbav:"Tally" json:"tally"`
	CreatedAt  time.Time   `dynamodbav:"CreatedAt" json:"created_at"`
}

func NewRecord(id string, r model.Result, source string) Record {
	return Record{
		ID:         id,
		Source:     source,
		Paragraphs: r.NumParagraphs(),
		TotalNotes: r.TotalNotes(),
		Tally:      r.Tally(),
		CreatedAt:  time.Now().UTC(),
	}
}

type Store struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewStore(client dynamodbiface.DynamoDBAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// Connect builds a store against a DynamoDB endpoint, e.g. a local one at
// http://localhost:8000.
func Connect(endpoint, region, table string) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewStore(dynamodb.New(sess), table), nil
}

func (s *Store) Save(ctx context.Context, rec Record) error {
	item, err := dynamodbattribute.MarshalMap(rec)
	if err != nil {
		return errors.Wrap(err, "could not marshal analysis record")
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrapf(err, "could not save analysis %v", rec.ID)
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return rec, errors.Wrapf(err, "could not get analysis %v", id)
	}
	if len(out.Item) == 0 {
		return rec, ErrNotFound
	}
	err = dynamodbattribute.UnmarshalMap(out.Item, &rec)
	return rec, errors.Wrap(err, "could not unmarshal analysis record")
}
