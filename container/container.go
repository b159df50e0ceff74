package container

// Container is a []byte slice on steroids, allowing for quick data appending
// and compiling. It is used to collect seed material before it is handed to
// the generator, which is why it can also be wiped.
type Container struct {
	compartments [][]byte
	offset       int
}

// New creates a new container with an optional initial []byte slice. Data will NOT be copied.
func New(data ...[]byte) *Container {
	return &Container{
		compartments: data,
	}
}

// Append appends the given data. Data will NOT be copied.
func (c *Container) Append(data []byte) {
	c.compartments = append(c.compartments, data)
}

// AppendCopy appends a copy of the given data.
func (c *Container) AppendCopy(data []byte) {
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	c.Append(dataCopy)
}

// Length returns the full length of all bytes held by the container.
func (c *Container) Length() (length int) {
	for i := c.offset; i < len(c.compartments); i++ {
		length += len(c.compartments[i])
	}
	return
}

// CompileData concatenates all bytes held by the container and returns it as one single []byte slice. Data will NOT be copied and is NOT consumed.
func (c *Container) CompileData() []byte {
	if len(c.compartments)-c.offset != 1 {
		newBuf := make([]byte, c.Length())
		copyBuf := newBuf
		for i := c.offset; i < len(c.compartments); i++ {
			copy(copyBuf, c.compartments[i])
			copyBuf = copyBuf[len(c.compartments[i]):]
		}
		c.compartments = [][]byte{newBuf}
		c.offset = 0
	}
	return c.compartments[c.offset]
}

// Wipe overwrites all held data with zeros and empties the container.
func (c *Container) Wipe() {
	for i := c.offset; i < len(c.compartments); i++ {
		compartment := c.compartments[i]
		for j := range compartment {
			compartment[j] = 0
		}
	}
	c.Clear()
}

// Clear empties the container. Data is not touched.
func (c *Container) Clear() {
	c.compartments = nil
	c.offset = 0
}
