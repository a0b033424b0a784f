package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	DB = gdb
	t.Cleanup(func() {
		DB = nil
		sqlDB.Close()
	})
	return mock
}

func TestRecordOrder(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := RecordOrder(&Order{
		OrderID:      "ord-1",
		SessionID:    "sess-1",
		Product:      "nitroflare",
		PlanID:       "nf-30",
		Email:        "buyer@example.com",
		Method:       "BTC",
		LockedAmount: "0.00049976",
		Status:       StatusPending,
	})
	if err != nil {
		t.Errorf("RecordOrder failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := UpdateOrderStatus("ord-1", StatusExpired); err != nil {
		t.Errorf("UpdateOrderStatus failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestOrdersByEmail(t *testing.T) {
	mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "order_id", "email", "status"}).
		AddRow(1, "ord-1", "buyer@example.com", StatusPending)
	mock.ExpectQuery("SELECT \\* FROM `orders`").WillReturnRows(rows)

	orders, err := OrdersByEmail("buyer@example.com")
	if err != nil {
		t.Fatalf("OrdersByEmail failed: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderID != "ord-1" {
		t.Errorf("unexpected orders: %+v", orders)
	}
}

func TestNilDBIsSafe(t *testing.T) {
	DB = nil
	if err := RecordOrder(&Order{OrderID: "x"}); err != nil {
		t.Error("RecordOrder with nil DB should be a no-op, got", err)
	}
	if err := UpdateOrderStatus("x", StatusCancelled); err != nil {
		t.Error("UpdateOrderStatus with nil DB should be a no-op, got", err)
	}
}
