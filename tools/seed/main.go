package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// 开发用数据填充工具：通过HTTP接口注册演示用户并生成帖子与好友关系
// 假定服务指向一个刚刚reset过的空库（用户ID从1开始、请求ID从1开始）

var baseURL = flag.String("base", "http://localhost:8080", "server base url")

type client struct {
	http *http.Client
	name string
}

func newClient(name string) *client {
	jar, _ := cookiejar.New(nil)
	return &client{
		http: &http.Client{Jar: jar},
		name: name,
	}
}

func (c *client) postForm(path string, form url.Values) error {
	resp, err := c.http.PostForm(*baseURL+path, form)
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.name, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d", c.name, path, resp.StatusCode)
	}
	return nil
}

func (c *client) get(path string) error {
	resp, err := c.http.Get(*baseURL + path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", c.name, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d", c.name, path, resp.StatusCode)
	}
	return nil
}

func (c *client) registerAndLogin(password string) error {
	form := url.Values{"username": {c.name}, "password": {password}}
	if err := c.postForm("/register", form); err != nil {
		return err
	}
	return c.postForm("/login", form)
}

func (c *client) createPost(title, content string) error {
	return c.postForm("/create", url.Values{"title": {title}, "content": {content}})
}

func main() {
	flag.Parse()

	names := []string{"alice", "bob", "carol"}
	clients := make([]*client, 0, len(names))
	for _, name := range names {
		c := newClient(name)
		if err := c.registerAndLogin("password123"); err != nil {
			log.Fatalf("seed user failed: %v", err)
		}
		clients = append(clients, c)
		fmt.Printf("registered and logged in: %s\n", name)
	}

	for i, c := range clients {
		for n := 1; n <= 2; n++ {
			title := fmt.Sprintf("%s's post #%d", c.name, n)
			content := fmt.Sprintf("Hello from %s, this is demo post %d.", c.name, n)
			if err := c.createPost(title, content); err != nil {
				log.Fatalf("seed post failed: %v", err)
			}
		}
		fmt.Printf("created posts for user %d (%s)\n", i+1, c.name)
	}

	// alice(1) -> bob(2) 好友请求，bob接受；carol(3) -> alice(1) 挂起
	if err := clients[0].postForm("/send_request/2", url.Values{}); err != nil {
		log.Fatalf("send request failed: %v", err)
	}
	if err := clients[1].get("/accept_request/1"); err != nil {
		log.Fatalf("accept request failed: %v", err)
	}
	if err := clients[2].postForm("/send_request/1", url.Values{}); err != nil {
		log.Fatalf("send request failed: %v", err)
	}

	fmt.Println("seed data created: 3 users, 6 posts, 1 friendship, 1 pending request")
}
