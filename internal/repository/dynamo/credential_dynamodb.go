// Package dynamo stores credentials in a DynamoDB table keyed by username.
package dynamo

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/repository"
)

const (
	DefaultTableName = "UserAuthentication"

	attrUsername = "username"
	attrSalt     = "salt"
	attrVerifier = "verifier"
)

// API is the subset of *dynamodb.Client used by the repository.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var _ repository.CredentialRepository = (*DynamoDBCredentialRepository)(nil)

// DynamoDBCredentialRepository implements CredentialRepository on a table
// whose partition key is the string attribute "username".
type DynamoDBCredentialRepository struct {
	client API
	table  string
}

func NewDynamoDBCredentialRepository(client API, table string) *DynamoDBCredentialRepository {
	if table == "" {
		table = DefaultTableName
	}
	return &DynamoDBCredentialRepository{
		client: client,
		table:  table,
	}
}

func (r *DynamoDBCredentialRepository) GetCredential(ctx context.Context, username string) (*models.Credential, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			attrUsername: &types.AttributeValueMemberS{Value: username},
		},
		ProjectionExpression: aws.String("#u, #s, #v"),
		ExpressionAttributeNames: map[string]string{
			"#u": attrUsername,
			"#s": attrSalt,
			"#v": attrVerifier,
		},
		// a login right after registration must see the new item
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, repository.Unavailable("dynamodb GetItem failed", err)
	}
	// an existing item with no projected attributes still comes back as a
	// non-nil map and must decode as malformed
	if out.Item == nil {
		return nil, repository.ErrCredentialNotFound
	}

	return repository.DecodeCredential(username, binaryAttr(out.Item, attrSalt), binaryAttr(out.Item, attrVerifier))
}

func (r *DynamoDBCredentialRepository) CreateCredentialIfAbsent(ctx context.Context, username string, salt models.Salt, verifier models.Verifier) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item: map[string]types.AttributeValue{
			attrUsername: &types.AttributeValueMemberS{Value: username},
			attrSalt:     &types.AttributeValueMemberB{Value: salt[:]},
			attrVerifier: &types.AttributeValueMemberB{Value: verifier[:]},
		},
		ConditionExpression: aws.String("attribute_not_exists(#u)"),
		ExpressionAttributeNames: map[string]string{
			"#u": attrUsername,
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repository.ErrUserExists
		}
		return repository.Unavailable("dynamodb PutItem failed", err)
	}
	return nil
}

// binaryAttr returns nil when the attribute is missing or not of type B,
// which DecodeCredential reports as a malformed record.
func binaryAttr(item map[string]types.AttributeValue, name string) []byte {
	if b, ok := item[name].(*types.AttributeValueMemberB); ok {
		return b.Value
	}
	return nil
}
