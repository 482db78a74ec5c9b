package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	PaymentGatewaySecret   string
	CarrierBaseURL         string
	CarrierAPIKey          string
	DefaultCourierID       string
	TrackingURLBase        string
	RabbitMQURL            string
	EmailQueue             string
	SMSQueue               string
	OperatorEmail          string
	KafkaHost              string
	KafkaOrderChangedTopic string
}
