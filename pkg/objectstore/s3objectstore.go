package objectstore

import (
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/weberc2/mfs/pkg/types"
)

type S3ObjectStore struct {
	Client *s3.S3
}

type S3Config struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool
}

// NewS3ObjectStore builds a store from the default AWS credential chain.
func NewS3ObjectStore(config *S3Config) (*S3ObjectStore, error) {
	awsConfig := aws.Config{
		S3ForcePathStyle: aws.Bool(config.ForcePathStyle),
	}
	if config.Region != "" {
		awsConfig.Region = aws.String(config.Region)
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}
	sess, err := session.NewSession(&awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}
	return &S3ObjectStore{Client: s3.New(sess)}, nil
}

func (os *S3ObjectStore) PutObject(bucket, key string, data io.ReadSeeker) error {
	if _, err := os.Client.PutObject(&s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   data,
	}); err != nil {
		return fmt.Errorf(
			"putting object in bucket `%s` at key `%s`: %w",
			bucket,
			key,
			err,
		)
	}
	return nil
}

func (os *S3ObjectStore) GetObject(bucket, key string) (io.ReadCloser, error) {
	rsp, err := os.Client.GetObject(&s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		if err, ok := err.(awserr.Error); ok {
			if err.Code() == s3.ErrCodeNoSuchKey ||
				err.Code() == s3.ErrCodeNoSuchBucket {
				return nil, &types.ObjectNotFoundErr{Bucket: bucket, Key: key}
			}
		}
		return nil, fmt.Errorf(
			"getting object from bucket `%s` at key `%s`: %w",
			bucket,
			key,
			err,
		)
	}
	return rsp.Body, nil
}
