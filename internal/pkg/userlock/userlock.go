package userlock

import (
	"sync"
)

// Locker 按用户 ID 串行化的互斥锁集合。
// 积分账户的读-改-写必须按用户串行，否则两次并发消费可能用同一份
// 旧余额通过校验造成透支；数据库行锁覆盖跨进程场景，这里覆盖进程内。
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New() *Locker {
	return &Locker{
		locks: make(map[int64]*sync.Mutex),
	}
}

// Lock 锁定指定用户，返回解锁函数
func (l *Locker) Lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
