package db

// RecordOrder writes a payment attempt. A missing database is not an error:
// the checkout itself never depends on the order log.
func RecordOrder(o *Order) error {
	if DB == nil {
		return nil
	}
	return DB.Create(o).Error
}

func UpdateOrderStatus(orderID, status string) error {
	if DB == nil {
		return nil
	}
	return DB.Model(&Order{}).Where("order_id = ?", orderID).Update("status", status).Error
}

func OrdersByEmail(email string) ([]Order, error) {
	if DB == nil {
		return nil, nil
	}
	var orders []Order
	err := DB.Where("email = ?", email).Order("created_at desc").Find(&orders).Error
	return orders, err
}
