package actor

// Context 当前 actor 的显式上下文
// 持有 World 与当前 actor 标识，在其作用域内创建的 actor 都挂在当前 actor 之下。
type Context struct {
	*World
	current ActorId
}

// Root 根上下文，创建的 actor 没有父节点
func Root(w *World) *Context {
	return &Context{World: w}
}

// Of 指定 actor 的上下文
func Of(w *World, id ActorId) *Context {
	return &Context{World: w, current: id}
}

// Current 当前 actor，根上下文返回零值
func (c *Context) Current() ActorId {
	return c.current
}

// Create 在 system 下创建当前 actor 的子 actor，并返回子 actor 的上下文
func (c *Context) Create(system SystemId) (ActorId, *Context, error) {
	id, err := c.World.Create(system, c.current)
	if err != nil {
		return ActorId{}, nil, err
	}
	return id, Of(c.World, id), nil
}

// Shutdown 停止当前 actor
func (c *Context) Shutdown() error {
	if c.current.IsZero() {
		return nil
	}
	return c.World.Stop(c.current)
}
