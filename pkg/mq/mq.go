// Package mq 基于RabbitMQ Topic Exchange的领域事件发布/订阅
//
// 书店把成交等领域事件(sale.recorded、book.restocked)发到bookstore.events,
// 报表、通知等下游按路由键订阅,与销售主流程异步解耦。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// session 一条AMQP连接及其Channel,Publisher和Consumer共用的底座
type session struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// dial 建立连接并声明持久化Exchange
// Publisher和Consumer各自声明同一个Exchange,先启动的一方完成创建
func dial(url, exchange, exchangeType string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable=true:RabbitMQ重启后Exchange不丢失
	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	return &session{conn: conn, channel: channel}, nil
}

// close 依次关闭Channel和连接
func (s *session) close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}

// Publisher 领域事件发布者
type Publisher struct {
	sess     *session
	exchange string
}

// NewPublisher 创建事件发布者
// exchangeType用topic,路由键按"聚合.动作"命名(sale.recorded)
func NewPublisher(url, exchange, exchangeType string) (*Publisher, error) {
	sess, err := dial(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ 事件发布者已就绪: Exchange=%s, Type=%s", exchange, exchangeType)
	return &Publisher{sess: sess, exchange: exchange}, nil
}

// Publish 发布一条事件
// message序列化为JSON,以持久化投递模式写入Exchange
func (p *Publisher) Publish(routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("事件序列化失败: %w", err)
	}

	err = p.sess.channel.PublishWithContext(
		context.Background(),
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}

	log.Printf("📤 事件已发布: RoutingKey=%s, Body=%s", routingKey, string(body))
	return nil
}

// Close 关闭发布者
func (p *Publisher) Close() error {
	return p.sess.close()
}

// Consumer 领域事件消费者
// 每个下游(报表、通知)用自己的队列名,互不抢占消息
type Consumer struct {
	sess  *session
	queue string
}

// NewConsumer 创建事件消费者并把队列绑定到Exchange
// routingKeys支持通配符:sale.*匹配sale.recorded,#匹配全部事件
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string) (*Consumer, error) {
	sess, err := dial(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	// durable队列,多消费者共享
	q, err := sess.channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		sess.close()
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, routingKey := range routingKeys {
		if err := sess.channel.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			sess.close()
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	log.Printf("✅ 事件消费者已就绪: Queue=%s, RoutingKeys=%v", queue, routingKeys)
	return &Consumer{sess: sess, queue: q.Name}, nil
}

// Consume 循环消费事件直到ctx取消
// handler返回nil时Ack;返回错误时Nack重新入队,等待下一轮处理
func (c *Consumer) Consume(ctx context.Context, handler func([]byte) error) error {
	// 每次只预取1条,多个消费者之间天然负载均衡
	if err := c.sess.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	// autoAck=false:处理成功才确认,避免事件丢失
	msgs, err := c.sess.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	log.Printf("📥 开始消费事件: Queue=%s", c.queue)

	for {
		select {
		case <-ctx.Done():
			log.Printf("🛑 消费者退出: Queue=%s", c.queue)
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("消息Channel已关闭")
			}

			log.Printf("📬 收到事件: RoutingKey=%s, Body=%s", msg.RoutingKey, string(msg.Body))

			if err := handler(msg.Body); err != nil {
				log.Printf("❌ 事件处理失败: %v, 重新入队", err)
				msg.Nack(false, true)
				continue
			}
			msg.Ack(false)
		}
	}
}

// Close 关闭消费者
func (c *Consumer) Close() error {
	return c.sess.close()
}
