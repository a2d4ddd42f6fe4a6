package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
)

// 测试依赖本地RabbitMQ，通过环境变量开启
func testMQURL(t *testing.T) string {
	url := os.Getenv("MQ_TEST_URL")
	if url == "" {
		t.Skip("未设置MQ_TEST_URL，跳过RabbitMQ测试")
	}
	return url
}

// TestSaleEvent 测试事件结构
type TestSaleEvent struct {
	SaleNo   string `json:"sale_no"`
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
	Action   string `json:"action"`
}

// TestPublisher_Publish 测试发布消息
func TestPublisher_Publish(t *testing.T) {
	url := testMQURL(t)

	// 创建发布者
	publisher, err := NewPublisher(url, "bookstore.test.events", "topic")
	if err != nil {
		t.Fatalf("创建Publisher失败: %v", err)
	}
	defer publisher.Close()

	// 发布消息
	event := TestSaleEvent{
		SaleNo:   "SAL1700000000123456",
		BookID:   1,
		Quantity: 3,
		Action:   "recorded",
	}

	err = publisher.Publish("sale.recorded", event)
	if err != nil {
		t.Fatalf("发布消息失败: %v", err)
	}

	t.Log("✅ 消息发布成功")
}

// TestConsumer_Consume 测试消费消息
func TestConsumer_Consume(t *testing.T) {
	url := testMQURL(t)

	// 创建消费者
	consumer, err := NewConsumer(
		url,
		"bookstore.test.events",
		"topic",
		"test.sale.queue",
		[]string{"sale.*"}, // 订阅所有sale.开头的事件
	)
	if err != nil {
		t.Fatalf("创建Consumer失败: %v", err)
	}
	defer consumer.Close()

	// 先发布一条消息
	publisher, err := NewPublisher(url, "bookstore.test.events", "topic")
	if err != nil {
		t.Fatalf("创建Publisher失败: %v", err)
	}
	defer publisher.Close()

	event := TestSaleEvent{
		SaleNo:   "SAL1700000000654321",
		BookID:   2,
		Quantity: 1,
		Action:   "recorded",
	}
	publisher.Publish("sale.recorded", event)

	// 消费消息
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := false
	go func() {
		consumer.Consume(ctx, func(body []byte) error {
			var receivedEvent TestSaleEvent
			if err := json.Unmarshal(body, &receivedEvent); err != nil {
				return err
			}

			t.Logf("📬 收到事件: %+v", receivedEvent)

			if receivedEvent.SaleNo == "SAL1700000000654321" && receivedEvent.Action == "recorded" {
				received = true
				cancel() // 收到预期消息，停止消费
			}

			return nil
		})
	}()

	// 等待消费完成
	<-ctx.Done()

	if !received {
		t.Error("未收到预期的消息")
	} else {
		t.Log("✅ 消息消费成功")
	}
}

// TestPubSub_Integration 集成测试：发布订阅完整流程
func TestPubSub_Integration(t *testing.T) {
	url := testMQURL(t)

	// 创建发布者
	publisher, err := NewPublisher(url, "bookstore.test.events", "topic")
	if err != nil {
		t.Fatalf("创建Publisher失败: %v", err)
	}
	defer publisher.Close()

	// 创建消费者
	consumer, err := NewConsumer(
		url,
		"bookstore.test.events",
		"topic",
		"test.integration.queue",
		[]string{"sale.*", "book.*"},
	)
	if err != nil {
		t.Fatalf("创建Consumer失败: %v", err)
	}
	defer consumer.Close()

	// 启动消费者
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receivedEvents := make([]string, 0)

	go func() {
		consumer.Consume(ctx, func(body []byte) error {
			var event TestSaleEvent
			json.Unmarshal(body, &event)

			receivedEvents = append(receivedEvents, event.Action)
			t.Logf("📬 收到事件: %s", event.Action)

			if len(receivedEvents) >= 3 {
				cancel() // 收到3条消息，停止
			}

			return nil
		})
	}()

	// 等待消费者启动
	time.Sleep(1 * time.Second)

	// 发布3条消息
	routingKeys := []string{"sale.recorded", "sale.recorded", "book.restocked"}
	actions := []string{"recorded", "recorded", "restocked"}
	for i := range routingKeys {
		err := publisher.Publish(routingKeys[i], TestSaleEvent{
			SaleNo:   "SAL170000000000000" + string(rune('0'+i)),
			BookID:   uint(i + 1),
			Quantity: 1,
			Action:   actions[i],
		})
		if err != nil {
			t.Errorf("发布消息失败: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	// 等待消费完成
	<-ctx.Done()

	// 验证
	if len(receivedEvents) != 3 {
		t.Errorf("期望收到3条消息，实际收到%d条", len(receivedEvents))
	}

	t.Logf("✅ 集成测试通过，收到事件: %v", receivedEvents)
}
