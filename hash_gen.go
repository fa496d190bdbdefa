package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := []byte("admin12345") // 初始管理员密码
	hashedPassword, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Printf("Email: admin@example.com\n")
	fmt.Printf("Hashed Password: %s\n", string(hashedPassword))
}

// INSERT INTO admins (id, document_status, admin_user_name, admin_user_type, email, password_hash, created_at, updated_at)
// VALUES (lower(hex(randomblob(16))), 1, 'Admin', 'Super Admin/Admin', 'admin@example.com', '<hash>', strftime('%Y-%m-%d %H:%M:%S', 'now'), strftime('%Y-%m-%d %H:%M:%S', 'now'));
