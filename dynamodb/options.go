package dynamodb

import (
	"errors"
	"io"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Option is a functional option for configuring a [Client].
type Option func(*Options)

// Options holds the configuration for a [Client]. Use [Option] functions
// (such as [WithEndpoint] or [WithLogger]) to customise the defaults.
type Options struct {
	endpoint    string
	dynamoDBAPI API
	logger      logrus.FieldLogger
}

func newOptions() *Options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return &Options{
		logger: discard,
	}
}

func (o *Options) validate() error {
	if o.logger == nil {
		return errors.New("logger cannot be nil")
	}

	if o.endpoint != "" {
		u, err := url.Parse(o.endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("endpoint must be an absolute URL")
		}
	}

	return nil
}

// WithEndpoint overrides the DynamoDB service endpoint, for example to point
// the client at DynamoDB Local or LocalStack. Ignored when [WithAPI] is set.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.endpoint = endpoint
	}
}

// WithAPI sets a custom [API] implementation. This is useful when a custom
// DynamoDB configuration is required, or for injecting mocks in tests.
func WithAPI(api API) Option {
	return func(o *Options) {
		o.dynamoDBAPI = api
	}
}

// WithLogger sets the logger used by the client. The default discards all
// output. The logger is enriched with "component" and "table_name" fields.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}
