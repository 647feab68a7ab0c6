package rabbitmq

import (
	"github.com/streadway/amqp"
)

// InitRabbitMQ 初始化RabbitMQ连接
func InitRabbitMQ(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// DeclareDurableQueue 声明一个持久化队列，已存在时是幂等的
func DeclareDurableQueue(conn *amqp.Connection, name string) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	// 临时Channel，声明完就关掉
	defer ch.Close()
	_, err = ch.QueueDeclare(
		name,  // name
		true,  // durable: 服务器重启后队列还在
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	return err
}
